package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSProvider_RoundTrip(t *testing.T) {
	p := NewHSProvider("secret", "storefront", "storefront-web")
	ctx := context.Background()

	tok, exp, err := p.SignSession(ctx, "sid-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := p.ParseSession(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, exp.Unix(), claims.Exp.Unix())
}

func TestHSProvider_Rejects(t *testing.T) {
	ctx := context.Background()
	p := NewHSProvider("secret", "storefront", "storefront-web")

	other := NewHSProvider("other-secret", "storefront", "storefront-web")
	tok, _, err := other.SignSession(ctx, "sid-1", time.Hour)
	require.NoError(t, err)
	_, err = p.ParseSession(ctx, tok)
	assert.Error(t, err, "wrong secret")

	wrongAud := NewHSProvider("secret", "storefront", "mobile")
	tok, _, _ = wrongAud.SignSession(ctx, "sid-1", time.Hour)
	_, err = p.ParseSession(ctx, tok)
	assert.Error(t, err, "wrong audience")

	_, err = p.ParseSession(ctx, "not-a-jwt")
	assert.Error(t, err)
}

func TestHSProvider_Expired(t *testing.T) {
	ctx := context.Background()
	p := NewHSProvider("secret", "storefront", "storefront-web")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := p.SignSession(ctx, "sid-1", time.Hour)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.ParseSession(ctx, tok)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestHSProvider_RejectsOtherAlgorithm(t *testing.T) {
	p := NewHSProvider("secret", "storefront", "storefront-web")
	claims := sessionClaims{SID: "sid-1", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "storefront", Audience: []string{"storefront-web"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = p.ParseSession(context.Background(), tok)
	assert.Error(t, err)
}
