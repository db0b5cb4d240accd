package service

import (
	"context"
	"time"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type SessionClaims struct {
	SessionID string
	Exp       time.Time
}

type SessionTokenProvider interface {
	SignSession(ctx context.Context, sessionID string, ttl time.Duration) (string, time.Time, error)
	ParseSession(ctx context.Context, token string) (*SessionClaims, error)
}

// AdminFlagStore persists the per-session admin flag.
type AdminFlagStore interface {
	AdminAuth(ctx context.Context, sessionID string) (bool, error)
	SetAdminAuth(ctx context.Context, sessionID string, on bool) error
}
