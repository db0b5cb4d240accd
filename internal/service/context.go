package service

import "context"

type ctxKey string

const (
	ctxSessionIDKey ctxKey = "sessionID"
	ctxAdminKey     ctxKey = "admin"
)

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxSessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxSessionIDKey).(string)
	return v, ok && v != ""
}

// WithAdmin marks the request as coming from a logged-in admin session.
func WithAdmin(ctx context.Context, on bool) context.Context {
	return context.WithValue(ctx, ctxAdminKey, on)
}

func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(ctxAdminKey).(bool)
	return v
}

func requireSession(ctx context.Context) (string, error) {
	sid, ok := SessionIDFromContext(ctx)
	if !ok {
		return "", ErrUnauthorized
	}
	return sid, nil
}

func requireAdmin(ctx context.Context) error {
	if _, err := requireSession(ctx); err != nil {
		return err
	}
	if !IsAdmin(ctx) {
		return ErrForbidden
	}
	return nil
}
