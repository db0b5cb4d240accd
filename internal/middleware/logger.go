package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-Id"
	bodyLogLimit    = 8 * 1024
	bodyReadLimit   = 4 * bodyLogLimit
)

var redactedKeys = map[string]bool{
	"password":      true,
	"authorization": true,
	"token":         true,
	"secret":        true,
}

type bodyLogWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	if remain := bodyLogLimit - w.buf.Len(); remain > 0 {
		if len(b) > remain {
			w.buf.Write(b[:remain])
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

type readCloser struct {
	io.Reader
	io.Closer
}

func redactJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var m any
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	var scrub func(any) any
	scrub = func(x any) any {
		switch v := x.(type) {
		case map[string]any:
			for k, val := range v {
				if redactedKeys[strings.ToLower(k)] {
					v[k] = "***redacted***"
					continue
				}
				v[k] = scrub(val)
			}
			return v
		case []any:
			for i := range v {
				v[i] = scrub(v[i])
			}
			return v
		default:
			return v
		}
	}
	b, err := json.Marshal(scrub(m))
	if err != nil {
		return raw
	}
	return b
}

func capped(b []byte) string {
	if len(b) > bodyLogLimit {
		return string(b[:bodyLogLimit]) + "...truncated..."
	}
	return string(b)
}

// RequestLogger пишет каждый запрос в zap. JSON-тела логируются с маскировкой секретов.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, reqID)
		}
		c.Header(HeaderRequestID, reqID)

		var reqBody string
		if strings.Contains(c.GetHeader("Content-Type"), "application/json") && c.Request.Body != nil {
			body := c.Request.Body
			raw, err := io.ReadAll(io.LimitReader(body, bodyReadLimit+1))
			switch {
			case err != nil:
			case len(raw) > bodyReadLimit:
				// обрезанный JSON не замаскировать, поэтому тело не пишем
				reqBody = "...too large to log..."
			default:
				reqBody = capped(redactJSON(raw))
			}
			// хендлер читает прочитанную часть, затем остаток исходного тела
			c.Request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(raw), body), Closer: body}
		}

		blw := &bodyLogWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("remote", c.ClientIP()),
			zap.Int("status", status),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
			zap.Int("resp_bytes", c.Writer.Size()),
		}
		if reqBody != "" {
			fields = append(fields, zap.String("req_body", reqBody))
		}
		if strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") {
			fields = append(fields, zap.String("resp_body", string(redactJSON(blw.buf.Bytes()))))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		if status >= http.StatusBadRequest {
			log.Error("http_request", fields...)
			return
		}
		log.Info("http_request", fields...)
	}
}
