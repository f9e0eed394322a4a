package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestLoginLimiter creates a login limiter backed by miniredis
func setupTestLoginLimiter(t *testing.T, maxAttempts int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	ll := NewLoginLimiter(client, LoginLimiterConfig{
		MaxAttempts: maxAttempts,
		Window:      window,
	})

	return ll, mr
}

func limitedRouter(ll *LoginLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/users/login", ll.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func loginRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginLimiter_AllowsAttemptsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, _ := setupTestLoginLimiter(t, 5, 1*time.Minute)
	router := limitedRouter(ll)

	for i := 0; i < 5; i++ {
		w := loginRequest(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code, "Attempt %d should be allowed", i+1)
	}
}

func TestLoginLimiter_BlocksAttemptsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, _ := setupTestLoginLimiter(t, 3, 1*time.Minute)
	router := limitedRouter(ll)

	for i := 0; i < 3; i++ {
		w := loginRequest(router, "192.168.1.1")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := loginRequest(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Attempt over the limit should be rejected")
	assert.NotEmpty(t, w.Header().Get("Retry-After"), "Rejection should carry a Retry-After header")
}

func TestLoginLimiter_TracksIPsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, _ := setupTestLoginLimiter(t, 2, 1*time.Minute)
	router := limitedRouter(ll)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code)
	}
	require.Equal(t, http.StatusTooManyRequests, loginRequest(router, "192.168.1.1").Code)

	assert.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.2").Code,
		"A different IP should not be affected by another IP's attempts")
}

func TestLoginLimiter_WindowExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, mr := setupTestLoginLimiter(t, 2, 1*time.Minute)
	router := limitedRouter(ll)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code)
	}
	require.Equal(t, http.StatusTooManyRequests, loginRequest(router, "192.168.1.1").Code)

	// Advance miniredis past the window so the counter expires
	mr.FastForward(61 * time.Second)

	assert.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code,
		"Counter should reset once the window passes")
}

func TestLoginLimiter_ResetClearsCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, _ := setupTestLoginLimiter(t, 2, 1*time.Minute)
	router := limitedRouter(ll)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code)
	}

	// A successful login clears the attempt counter
	require.NoError(t, ll.Reset("192.168.1.1"))

	assert.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code)
}

func TestLoginLimiter_InertWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll := NewLoginLimiter(nil, LoginLimiterConfig{MaxAttempts: 1, Window: time.Minute})
	router := limitedRouter(ll)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code,
			"Without Redis the limiter must pass everything through")
	}

	assert.NoError(t, ll.Reset("192.168.1.1"), "Reset must be nil-safe")
}

func TestLoginLimiter_FailsOpenOnRedisError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ll, mr := setupTestLoginLimiter(t, 2, 1*time.Minute)
	router := limitedRouter(ll)

	// Kill the backing store; logins must still go through
	mr.Close()

	assert.Equal(t, http.StatusOK, loginRequest(router, "192.168.1.1").Code,
		"A broken limiter must not lock users out")
}
