package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	SessionTTL        time.Duration
}

// AuthService issues client sessions and handles the single admin credential.
type AuthService interface {
	StartSession(ctx context.Context) (*Session, error)
	ResolveSession(ctx context.Context, token string) (string, error)
	Login(ctx context.Context, username, password string) (bool, error)
	Logout(ctx context.Context) error
	IsAdmin(ctx context.Context) (bool, error)
}

type authService struct {
	cfg    AuthConfig
	hasher PasswordHasher
	tokens SessionTokenProvider
	flags  AdminFlagStore
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(cfg AuthConfig, hasher PasswordHasher, tokens SessionTokenProvider, flags AdminFlagStore, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}
	return &authService{cfg: cfg, hasher: hasher, tokens: tokens, flags: flags, log: log, now: time.Now}
}

func (s *authService) StartSession(ctx context.Context) (*Session, error) {
	sid := uuid.NewString()
	tok, exp, err := s.tokens.SignSession(ctx, sid, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{ID: sid, Token: tok, ExpiresAt: exp}, nil
}

func (s *authService) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	claims, err := s.tokens.ParseSession(ctx, token)
	if err != nil || claims == nil || claims.SessionID == "" {
		return "", ErrUnauthorized
	}
	if !claims.Exp.IsZero() && !s.now().Before(claims.Exp) {
		return "", ErrUnauthorized
	}
	return claims.SessionID, nil
}

// Login sets the admin flag of the session on success.
// A failed attempt leaves the previous flag untouched.
func (s *authService) Login(ctx context.Context, username, password string) (bool, error) {
	sid, err := requireSession(ctx)
	if err != nil {
		return false, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := s.hasher.Compare(s.cfg.AdminPasswordHash, password)
	if !userOK || !passOK {
		s.log.Info("admin login rejected", zap.String("session", sid))
		return false, nil
	}

	if err := s.flags.SetAdminAuth(ctx, sid, true); err != nil {
		return false, err
	}
	s.log.Info("admin logged in", zap.String("session", sid))
	return true, nil
}

func (s *authService) Logout(ctx context.Context) error {
	sid, err := requireSession(ctx)
	if err != nil {
		return err
	}
	return s.flags.SetAdminAuth(ctx, sid, false)
}

func (s *authService) IsAdmin(ctx context.Context) (bool, error) {
	sid, err := requireSession(ctx)
	if err != nil {
		return false, err
	}
	return s.flags.AdminAuth(ctx, sid)
}
