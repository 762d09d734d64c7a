package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(t *testing.T, h *HealthHandler, path string) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestHealthCheck(t *testing.T) {
	code, body := get(t, NewHealthHandler("shift-agent", "1.2.3", fakePinger{err: errors.New("down")}, nil), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Empty(t, body.DB)
}

func TestReadiness(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	t.Run("all up", func(t *testing.T) {
		code, body := get(t, NewHealthHandler("shift-agent", "dev", fakePinger{}, rdb), "/healthz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "up", body.DB)
		assert.Equal(t, "up", body.Redis)
	})

	t.Run("db down", func(t *testing.T) {
		code, body := get(t, NewHealthHandler("shift-agent", "dev", fakePinger{err: errors.New("refused")}, nil), "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "down", body.DB)
		assert.Equal(t, "unhealthy", body.Status)
	})

	t.Run("no db configured", func(t *testing.T) {
		code, body := get(t, NewHealthHandler("shift-agent", "dev", nil, nil), "/healthz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "disabled", body.DB)
	})

	t.Run("redis down degrades", func(t *testing.T) {
		mr.SetError("ERR server unavailable")
		defer mr.SetError("")
		code, body := get(t, NewHealthHandler("shift-agent", "dev", fakePinger{}, rdb), "/healthz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Redis)
	})
}
