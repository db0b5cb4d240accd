package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-service/internal/i18n"
	"storefront-service/internal/prefs"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer \"abc.def.ghi\"", "abc.def.ghi", true},
		{"Bearer abc.def.ghi, extra", "abc.def.ghi", true},
		{"Bearer  abc extra", "abc", true},
		{"Basic dXNlcg==", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractBearerToken(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestRedactJSON(t *testing.T) {
	out := redactJSON([]byte(`{"username":"admin","password":"admin123","nested":[{"Token":"x"}]}`))
	assert.JSONEq(t, `{"username":"admin","password":"***redacted***","nested":[{"Token":"***redacted***"}]}`, string(out))
	assert.Equal(t, "not json", string(redactJSON([]byte("not json"))))
}

type resolverMock struct {
	ResolveSessionFunc func(ctx context.Context, token string) (string, error)
}

func (m *resolverMock) ResolveSession(ctx context.Context, token string) (string, error) {
	return m.ResolveSessionFunc(ctx, token)
}

type prefsMock struct {
	LoadFunc func(ctx context.Context, sid string) (prefs.Preferences, error)
}

func (m *prefsMock) Load(ctx context.Context, sid string) (prefs.Preferences, error) {
	return m.LoadFunc(ctx, sid)
}

func TestSessionRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	res := &resolverMock{ResolveSessionFunc: func(_ context.Context, tok string) (string, error) {
		if tok == "good" {
			return "s1", nil
		}
		return "", errors.New("bad token")
	}}
	pl := &prefsMock{LoadFunc: func(context.Context, string) (prefs.Preferences, error) {
		p := prefs.Defaults()
		p.Language = i18n.FR
		p.AdminAuth = true
		return p, nil
	}}

	r := gin.New()
	r.Use(SessionRequired(res, pl, zap.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		sid, _ := service.SessionIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"sid":   sid,
			"ctx":   SessionID(c),
			"lang":  Prefs(c).Language,
			"admin": service.IsAdmin(c.Request.Context()),
		})
	})
	r.GET("/admin", AdminRequired(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(path, authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/me", "Bearer bad").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/me", "Bearer ").Code)

	w := call("/me", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sid":"s1","ctx":"s1","lang":"fr","admin":true}`, w.Body.String())
	assert.Equal(t, http.StatusNoContent, call("/admin", "Bearer good").Code)

	pl.LoadFunc = func(context.Context, string) (prefs.Preferences, error) { return prefs.Defaults(), nil }
	assert.Equal(t, http.StatusForbidden, call("/admin", "Bearer good").Code)
}

func TestRequestLoggerPassesWholeBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var got []byte
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.POST("/echo", func(c *gin.Context) {
		got, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusNoContent)
	})

	send := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	large := `{"password":"p","description":"` + strings.Repeat("x", 40000) + `"}`
	send(large)
	assert.Equal(t, large, string(got))

	entries := logs.TakeAll()
	if assert.Len(t, entries, 1) {
		body := entries[0].ContextMap()["req_body"]
		assert.Equal(t, "...too large to log...", body)
	}

	send(`{"password":"secret","name":"x"}`)
	assert.JSONEq(t, `{"password":"secret","name":"x"}`, string(got))
	entries = logs.TakeAll()
	if assert.Len(t, entries, 1) {
		body, _ := entries[0].ContextMap()["req_body"].(string)
		assert.NotContains(t, body, "secret")
	}
}
