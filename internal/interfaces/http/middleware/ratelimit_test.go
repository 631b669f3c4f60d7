package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(limit, window)))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimit(t *testing.T) {
	t.Run("allows requests within the limit", func(t *testing.T) {
		router := newRateLimitedRouter(3, time.Minute)

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		router := newRateLimitedRouter(2, time.Minute)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		router := newRateLimitedRouter(5, time.Minute)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("window reset refills tokens", func(t *testing.T) {
		limiter := NewRateLimiter(1, 20*time.Millisecond)
		defer limiter.Close()

		require.True(t, limiter.Allow("10.0.0.1"))
		require.False(t, limiter.Allow("10.0.0.1"))

		time.Sleep(30 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})
}

func TestRateLimiter_Close(t *testing.T) {
	limiter := NewRateLimiter(2, 5*time.Millisecond)

	require.True(t, limiter.Allow("10.0.0.9"))
	limiter.Close()

	// closing stops the cleanup goroutine but keeps the limiter usable
	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.9"))

	assert.NotPanics(t, func() { limiter.Close() }, "Close is idempotent")
}
