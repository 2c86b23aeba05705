package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborly/forum/internal/middleware"
	"github.com/neighborly/forum/internal/testutil"
)

func setupLimitedRouter(t *testing.T, maxRequests int) (*gin.Engine, *testutil.TestRedis) {
	gin.SetMode(gin.TestMode)

	testRedis := testutil.SetupTestRedis(t)

	opt, err := redis.ParseURL(testRedis.URL)
	require.NoError(t, err)
	client := redis.NewClient(opt)

	limiter := middleware.NewRateLimiter(client, middleware.RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      time.Minute,
		BlockTime:   5 * time.Minute,
	})

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router, testRedis
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router, testRedis := setupLimitedRouter(t, 5)
	defer testRedis.Teardown(t)

	for i := 0; i < 5; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, testRedis := setupLimitedRouter(t, 3)
	defer testRedis.Teardown(t)

	for i := 0; i < 3; i++ {
		doRequest(router)
	}

	w := doRequest(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	router, testRedis := setupLimitedRouter(t, 1)
	testRedis.Server.Close()

	// With redis unreachable every request goes through
	for i := 0; i < 3; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
