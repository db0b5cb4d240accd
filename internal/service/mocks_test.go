package service_test

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/service"
)

type MockEventBus struct {
	PublishOrderCreatedFunc       func(ctx context.Context, e service.OrderCreatedEvent) error
	PublishOrderStatusChangedFunc func(ctx context.Context, e service.OrderStatusChangedEvent) error

	mu      sync.Mutex
	created []service.OrderCreatedEvent
	changed []service.OrderStatusChangedEvent
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	m.mu.Lock()
	m.created = append(m.created, e)
	m.mu.Unlock()
	if m.PublishOrderCreatedFunc != nil {
		return m.PublishOrderCreatedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	m.mu.Lock()
	m.changed = append(m.changed, e)
	m.mu.Unlock()
	if m.PublishOrderStatusChangedFunc != nil {
		return m.PublishOrderStatusChangedFunc(ctx, e)
	}
	return nil
}

type MockHasher struct {
	CompareFunc func(hash, password string) bool
}

func (m *MockHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (m *MockHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hash:"+password
}

type MockTokens struct {
	SignSessionFunc  func(ctx context.Context, sid string, ttl time.Duration) (string, time.Time, error)
	ParseSessionFunc func(ctx context.Context, token string) (*service.SessionClaims, error)
}

func (m *MockTokens) SignSession(ctx context.Context, sid string, ttl time.Duration) (string, time.Time, error) {
	if m.SignSessionFunc != nil {
		return m.SignSessionFunc(ctx, sid, ttl)
	}
	return "tok:" + sid, time.Now().Add(ttl), nil
}

func (m *MockTokens) ParseSession(ctx context.Context, token string) (*service.SessionClaims, error) {
	if m.ParseSessionFunc != nil {
		return m.ParseSessionFunc(ctx, token)
	}
	return nil, nil
}

type MockFlags struct {
	mu    sync.Mutex
	flags map[string]bool
	err   error
}

func (m *MockFlags) AdminAuth(_ context.Context, sid string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[sid], m.err
}

func (m *MockFlags) SetAdminAuth(_ context.Context, sid string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.flags == nil {
		m.flags = map[string]bool{}
	}
	m.flags[sid] = on
	return nil
}

func sessionCtx(sid string) context.Context {
	return service.WithSessionID(context.Background(), sid)
}

func adminCtx() context.Context {
	return service.WithAdmin(sessionCtx("admin-session"), true)
}
