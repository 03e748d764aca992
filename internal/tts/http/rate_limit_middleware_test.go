package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	keysDomain "github.com/odiadev/keygate/internal/keys/domain"
	keysHTTP "github.com/odiadev/keygate/internal/keys/http"
)

func newRateLimitedRouter(key *keysDomain.APIKey) *gin.Engine {
	router := gin.New()
	router.POST("/v1/tts",
		func(c *gin.Context) {
			if key != nil {
				c.Request = c.Request.WithContext(keysHTTP.WithAPIKey(c.Request.Context(), key))
			}
		},
		RateLimitMiddleware(testLogger()),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)
	return router
}

func performRateLimitedRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tts", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("AllowsWithinBurst", func(t *testing.T) {
		key := &keysDomain.APIKey{Prefix: "abc12345", RatePerMin: 10}
		router := newRateLimitedRouter(key)

		for i := 0; i < 10; i++ {
			w := performRateLimitedRequest(router)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("RejectsBeyondBurst", func(t *testing.T) {
		key := &keysDomain.APIKey{Prefix: "bcd23456", RatePerMin: 3}
		router := newRateLimitedRouter(key)

		for i := 0; i < 3; i++ {
			w := performRateLimitedRequest(router)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := performRateLimitedRequest(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "rate_limited")
	})

	t.Run("SeparateBucketsPerPrefix", func(t *testing.T) {
		router := gin.New()
		middleware := RateLimitMiddleware(testLogger())
		router.POST("/v1/tts/:prefix",
			func(c *gin.Context) {
				key := &keysDomain.APIKey{Prefix: c.Param("prefix"), RatePerMin: 1}
				c.Request = c.Request.WithContext(keysHTTP.WithAPIKey(c.Request.Context(), key))
			},
			middleware,
			func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			},
		)

		perform := func(prefix string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/tts/"+prefix, nil)
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, perform("key1aaaa"))
		assert.Equal(t, http.StatusTooManyRequests, perform("key1aaaa"))
		assert.Equal(t, http.StatusOK, perform("key2bbbb"))
	})

	t.Run("SkipsWithoutVerifiedKey", func(t *testing.T) {
		router := newRateLimitedRouter(nil)

		for i := 0; i < 5; i++ {
			w := performRateLimitedRequest(router)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("SkipsNonPositiveRate", func(t *testing.T) {
		key := &keysDomain.APIKey{Prefix: "cde34567", RatePerMin: 0}
		router := newRateLimitedRouter(key)

		for i := 0; i < 5; i++ {
			w := performRateLimitedRequest(router)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("RefillsOverTime", func(t *testing.T) {
		// 600/min refills one token every 100ms.
		key := &keysDomain.APIKey{Prefix: "def45678", RatePerMin: 600}
		router := newRateLimitedRouter(key)

		for i := 0; i < 600; i++ {
			performRateLimitedRequest(router)
		}
		w := performRateLimitedRequest(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		time.Sleep(150 * time.Millisecond)
		w = performRateLimitedRequest(router)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
