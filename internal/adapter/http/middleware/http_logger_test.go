package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

func TestRedactJSON(t *testing.T) {
	in := `{"name":"Ana","phone":"1155","address":"Palermo","notes":"timbre 2B","nested":[{"Token":"x","qty":2}]}`
	var got map[string]any
	require.NoError(t, json.Unmarshal(redactJSON([]byte(in)), &got))

	assert.Equal(t, "Ana", got["name"])
	assert.Equal(t, redacted, got["phone"])
	assert.Equal(t, redacted, got["address"])
	assert.Equal(t, redacted, got["notes"])
	nested := got["nested"].([]any)[0].(map[string]any)
	assert.Equal(t, redacted, nested["Token"])
	assert.EqualValues(t, 2, nested["qty"])

	assert.Equal(t, "not json", string(redactJSON([]byte("not json"))))
}

func TestLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Logging(base))
	r.POST("/v1/checkout", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		assert.Contains(t, string(body), "1155550000", "handler sees the untouched body")
		assert.NotSame(t, logging.Base(), logging.FromCtx(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"kind": "order", "url": "https://wa.me/549?text=secret"})
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(`{"name":"Ana","phone":"1155550000","notes":"tocar timbre"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "req-1", entry["req_id"])
	assert.EqualValues(t, 200, entry["status"])
	assert.NotContains(t, entry["req_body"], "1155550000")
	assert.NotContains(t, entry["req_body"], "timbre")
	assert.NotContains(t, entry["resp_body"], "wa.me")
	assert.Contains(t, entry["resp_body"], `"kind":"order"`)
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logging(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get("X-Request-Id"), 36)
}
