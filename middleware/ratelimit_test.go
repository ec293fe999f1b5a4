package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pijatjogja/pijatjogja-api/config"
)

func rateLimitRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimiter(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiter_AllowsWithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)

	r := rateLimitRouter(RateLimitConfig{Limit: 1, Window: time.Minute})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(client)
	defer config.SetRedisClientForTesting(nil)

	key := "ratelimit:/login:192.0.2.1"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	r := rateLimitRouter(RateLimitConfig{Limit: 5, Window: time.Minute})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(client)
	defer config.SetRedisClientForTesting(nil)

	key := "ratelimit:/login:192.0.2.1"
	mock.ExpectIncr(key).SetVal(6)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	r := rateLimitRouter(RateLimitConfig{Limit: 5, Window: time.Minute})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_DefaultsApplied(t *testing.T) {
	config.SetRedisClientForTesting(nil)

	// Zero values fall back to 5 attempts per 15 minutes; without Redis the
	// middleware lets the request through.
	r := rateLimitRouter(RateLimitConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetRateLimit_WithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	assert.Error(t, ResetRateLimit("192.0.2.1", "/login"))
}

func TestResetRateLimit_DeletesKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(client)
	defer config.SetRedisClientForTesting(nil)

	mock.ExpectDel("ratelimit:/login:192.0.2.1").SetVal(1)

	assert.NoError(t, ResetRateLimit("192.0.2.1", "/login"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
