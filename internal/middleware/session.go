package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront-service/internal/dto"
	"storefront-service/internal/prefs"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for session info
const (
	CtxSessionID = "session_id"
	CtxPrefs     = "prefs"
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

type PrefsLoader interface {
	Load(ctx context.Context, sessionID string) (prefs.Preferences, error)
}

// SessionRequired validates the Bearer session token, loads the session preferences
// and puts both into the gin context and the request context.
func SessionRequired(sessions SessionResolver, pl PrefsLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("empty token"))
			return
		}

		sid, err := sessions.ResolveSession(c.Request.Context(), token)
		if err != nil {
			log.Warn("resolve session failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		p, err := pl.Load(c.Request.Context(), sid)
		if err != nil {
			// продолжаем с тем, что удалось прочитать
			log.Warn("load preferences failed", zap.String("session", sid), zap.Error(err))
		}

		ctx := service.WithSessionID(c.Request.Context(), sid)
		ctx = service.WithAdmin(ctx, p.AdminAuth)
		c.Request = c.Request.WithContext(ctx)
		c.Set(CtxSessionID, sid)
		c.Set(CtxPrefs, p)
		c.Next()
	}
}

// AdminRequired rejects sessions without the admin flag. Must run after SessionRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Prefs(c).AdminAuth {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("admin authentication required"))
			return
		}
		c.Next()
	}
}

func SessionID(c *gin.Context) string { return c.GetString(CtxSessionID) }

// Prefs returns the preferences loaded for the request, or the defaults.
func Prefs(c *gin.Context) prefs.Preferences {
	if v, ok := c.Get(CtxPrefs); ok {
		if p, ok := v.(prefs.Preferences); ok {
			return p
		}
	}
	return prefs.Defaults()
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
// Примеры допустимых значений:
// - "Bearer abc.def.ghi"
// - "Bearer \"abc.def.ghi\""
// - "Bearer abc.def.ghi, extra"
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	// всё после запятой отбрасываем
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.Trim(strings.TrimSpace(t[:i]), " \"'")
	}
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.Trim(strings.TrimSpace(t[:i]), " \"'")
	}
	return t, true
}
