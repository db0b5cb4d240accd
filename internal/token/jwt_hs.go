package token

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// HSProvider signs session tokens with a shared HMAC secret.
type HSProvider struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewHSProvider(secret, issuer, audience string) *HSProvider {
	return &HSProvider{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (p *HSProvider) SignSession(ctx context.Context, sessionID string, ttl time.Duration) (string, time.Time, error) {
	now := p.now()
	exp := now.Add(ttl)

	claims := sessionClaims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   sessionID,
			Audience:  []string{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.secret)
	return signed, exp, err
}

func (p *HSProvider) ParseSession(ctx context.Context, token string) (*service.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithAudience(p.audience), jwt.WithIssuer(p.issuer), jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, err
	}
	cc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || cc.SID == "" {
		return nil, ErrInvalidToken
	}
	out := &service.SessionClaims{SessionID: cc.SID}
	if cc.ExpiresAt != nil {
		out.Exp = cc.ExpiresAt.Time
	}
	return out, nil
}
