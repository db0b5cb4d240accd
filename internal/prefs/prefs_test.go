package prefs_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/i18n"
	"storefront-service/internal/prefs"
	"storefront-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	svc := prefs.NewService(prefs.NewMemoryStore())

	p, err := svc.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, prefs.Preferences{Language: i18n.AR, Currency: pricing.DZD, AdminAuth: false}, p)
}

func TestSetAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := prefs.NewMemoryStore()
	svc := prefs.NewService(kv)

	l, err := svc.SetLanguage(ctx, "s1", "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, i18n.FR, l)

	c, err := svc.SetCurrency(ctx, "s1", "usd")
	require.NoError(t, err)
	assert.Equal(t, pricing.USD, c)

	require.NoError(t, svc.SetAdminAuth(ctx, "s1", true))

	// новый сервис поверх того же хранилища видит сохранённые значения
	p, err := prefs.NewService(kv).Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, prefs.Preferences{Language: i18n.FR, Currency: pricing.USD, AdminAuth: true}, p)

	raw, ok, err := kv.Get(ctx, "s1", prefs.KeyAdminAuth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", raw)

	other, err := svc.Load(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, prefs.Defaults(), other)
}

func TestSetAdminAuthFalseRemovesKey(t *testing.T) {
	ctx := context.Background()
	kv := prefs.NewMemoryStore()
	svc := prefs.NewService(kv)

	require.NoError(t, svc.SetAdminAuth(ctx, "s1", true))
	require.NoError(t, svc.SetAdminAuth(ctx, "s1", false))

	_, ok, err := kv.Get(ctx, "s1", prefs.KeyAdminAuth)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRejectsUnsupportedValues(t *testing.T) {
	ctx := context.Background()
	svc := prefs.NewService(prefs.NewMemoryStore())

	_, err := svc.SetLanguage(ctx, "s1", "de")
	require.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	_, err = svc.SetCurrency(ctx, "s1", "GBP")
	require.ErrorIs(t, err, pricing.ErrUnknownCurrency)
}

func TestLoad_CorruptValueFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := prefs.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "s1", prefs.KeyCurrency, "???"))
	require.NoError(t, kv.Set(ctx, "s1", prefs.KeyAdminAuth, "yes"))

	p, err := prefs.NewService(kv).Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, pricing.DZD, p.Currency)
	assert.False(t, p.AdminAuth)
}

type failingKV struct{ prefs.KV }

func (failingKV) Get(context.Context, string, prefs.Key) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestLoad_StoreError(t *testing.T) {
	_, err := prefs.NewService(failingKV{}).Load(context.Background(), "s1")
	require.Error(t, err)
}
