package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

const (
	reqBodyLimit  = 8 * 1024 // 8KB
	respBodyLimit = 8 * 1024 // 8KB

	redacted = "***redacted***"
)

// Customer contact fields travel in checkout bodies and in the handoff message.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"authorization": true,
	"token":         true,
	"secret":        true,
	"phone":         true,
	"address":       true,
	"notes":         true,
	"message":       true,
	"url":           true,
}

type bodyLogWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	// copy into buffer with cap
	if w.buf != nil && w.buf.Len() < respBodyLimit {
		remain := respBodyLimit - w.buf.Len()
		if len(b) > remain {
			w.buf.Write(b[:remain])
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func redactJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var m any
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw // not JSON
	}
	var scrub func(any) any
	scrub = func(x any) any {
		switch v := x.(type) {
		case map[string]any:
			for k, val := range v {
				if sensitiveKeys[strings.ToLower(k)] {
					v[k] = redacted
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

// readCapped reads the whole body so it can be handed on untouched, and
// returns at most n bytes of it for logging.
func readCapped(rc io.ReadCloser, n int) (full, logged []byte, truncated bool) {
	defer rc.Close()
	full, _ = io.ReadAll(rc)
	if len(full) > n {
		return full, full[:n], true
	}
	return full, full, false
}

// Logging returns a Gin middleware that logs request/response and injects a
// slog.Logger into both the gin context and the request context.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
			c.Request.Header.Set("X-Request-Id", reqID)
		}
		c.Header("X-Request-Id", reqID)

		l := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(), // may be empty if no route matched
			"remote", c.ClientIP(),
		)
		logging.With(c, l)
		c.Request = c.Request.WithContext(logging.WithCtx(c.Request.Context(), l))

		// capture request body (JSON only)
		var reqBodyLogged string
		if strings.Contains(c.GetHeader("Content-Type"), "application/json") && c.Request.Body != nil {
			full, logged, truncated := readCapped(c.Request.Body, reqBodyLimit)
			if truncated {
				// a cut JSON document cannot be parsed, so it cannot be redacted either
				reqBodyLogged = "...truncated..."
			} else {
				reqBodyLogged = string(redactJSON(logged))
			}
			// restore body for next handlers
			c.Request.Body = io.NopCloser(bytes.NewReader(full))
		}

		blw := &bodyLogWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()

		var respBodyLogged string
		if strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") {
			if blw.buf.Len() >= respBodyLimit {
				respBodyLogged = "...truncated..."
			} else {
				respBodyLogged = string(redactJSON(blw.buf.Bytes()))
			}
		}

		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
		}
		if reqBodyLogged != "" {
			attrs = append(attrs, "req_body", reqBodyLogged)
		}
		if respBodyLogged != "" {
			attrs = append(attrs, "resp_body", respBodyLogged)
		}
		if len(c.Params) > 0 {
			attrs = append(attrs, "params", c.Params)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		attrs = append(attrs, "resp_bytes", strconv.Itoa(c.Writer.Size()))

		switch {
		case status >= http.StatusInternalServerError:
			l.Error("http_request", attrs...)
		case status >= http.StatusBadRequest:
			l.Warn("http_request", attrs...)
		default:
			l.Info("http_request", attrs...)
		}
	}
}
