package prefs

import (
	"context"
	"fmt"

	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"
)

type Preferences struct {
	Language  i18n.Lang
	Currency  pricing.Currency
	AdminAuth bool
}

func Defaults() Preferences {
	return Preferences{Language: i18n.DefaultLang, Currency: pricing.DefaultCurrency}
}

// Service reads and writes the persisted display preferences of a session.
// A missing or unreadable value falls back to its default.
type Service struct {
	kv KV
}

func NewService(kv KV) *Service { return &Service{kv: kv} }

func (s *Service) Load(ctx context.Context, sessionID string) (Preferences, error) {
	p := Defaults()

	if v, ok, err := s.kv.Get(ctx, sessionID, KeyLanguage); err != nil {
		return p, fmt.Errorf("get language: %w", err)
	} else if ok {
		if l, err := i18n.ParseLang(v); err == nil {
			p.Language = l
		}
	}
	if v, ok, err := s.kv.Get(ctx, sessionID, KeyCurrency); err != nil {
		return p, fmt.Errorf("get currency: %w", err)
	} else if ok {
		if c, err := pricing.ParseCurrency(v); err == nil {
			p.Currency = c
		}
	}
	auth, err := s.AdminAuth(ctx, sessionID)
	if err != nil {
		return p, err
	}
	p.AdminAuth = auth
	return p, nil
}

func (s *Service) SetLanguage(ctx context.Context, sessionID, raw string) (i18n.Lang, error) {
	l, err := i18n.ParseLang(raw)
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, sessionID, KeyLanguage, string(l)); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	return l, nil
}

func (s *Service) SetCurrency(ctx context.Context, sessionID, raw string) (pricing.Currency, error) {
	c, err := pricing.ParseCurrency(raw)
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, sessionID, KeyCurrency, string(c)); err != nil {
		return "", fmt.Errorf("set currency: %w", err)
	}
	return c, nil
}

func (s *Service) AdminAuth(ctx context.Context, sessionID string) (bool, error) {
	v, ok, err := s.kv.Get(ctx, sessionID, KeyAdminAuth)
	if err != nil {
		return false, fmt.Errorf("get admin flag: %w", err)
	}
	return ok && v == "true", nil
}

// SetAdminAuth stores "true" or removes the key.
func (s *Service) SetAdminAuth(ctx context.Context, sessionID string, on bool) error {
	if !on {
		if err := s.kv.Delete(ctx, sessionID, KeyAdminAuth); err != nil {
			return fmt.Errorf("clear admin flag: %w", err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, sessionID, KeyAdminAuth, "true"); err != nil {
		return fmt.Errorf("set admin flag: %w", err)
	}
	return nil
}
