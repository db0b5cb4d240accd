package i18n_test

import (
	"testing"

	"storefront-service/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesComplete(t *testing.T) {
	require.NoError(t, i18n.Validate())
}

func TestT(t *testing.T) {
	assert.Equal(t, "Pending", i18n.T(i18n.EN, i18n.StatusPending))
	assert.Equal(t, "En attente", i18n.T(i18n.FR, i18n.StatusPending))
	assert.Equal(t, "قيد الانتظار", i18n.T(i18n.AR, i18n.StatusPending))
}

func TestT_UnknownKeyFallsBackToName(t *testing.T) {
	assert.Equal(t, "i18n.Key(9999)", i18n.T(i18n.EN, i18n.Key(9999)))
}

func TestParseLang(t *testing.T) {
	cases := map[string]i18n.Lang{
		"ar":    i18n.AR,
		"fr-FR": i18n.FR,
		"EN":    i18n.EN,
		"en-US": i18n.EN,
	}
	for in, want := range cases {
		got, err := i18n.ParseLang(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := i18n.ParseLang("de")
	require.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	_, err = i18n.ParseLang("not a tag")
	require.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
}

func TestText(t *testing.T) {
	txt := i18n.Text{"ساعة", "Montre connectée", "Smartwatch"}
	assert.True(t, txt.Complete())
	assert.True(t, txt.Contains(i18n.FR, "MONTRE"))
	assert.False(t, txt.Contains(i18n.EN, "montre"))
	assert.False(t, i18n.Text{"a", "", "c"}.Complete())
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Mode", i18n.CategoryName("fashion").FR)
	assert.Equal(t, "toys", i18n.CategoryName("toys").EN)
}
