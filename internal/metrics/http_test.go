package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.POST("/v1/admin/keys", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"prefix": "abc12345"})
	})

	// Two matched requests, one unmatched
	for range 2 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/keys", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Scrape and verify labels use the route pattern
	scrape := httptest.NewRecorder()
	scrapeReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(scrape, scrapeReq)

	output := scrape.Body.String()
	assertBizMetricLine(
		t,
		output,
		`http_test_http_requests_total`,
		`method="POST".*path="/v1/admin/keys".*status_code="201"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`http_test_http_requests_total`,
		`method="GET".*path="unknown".*status_code="404"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`http_test_http_request_duration_seconds_count`,
		`method="POST".*path="/v1/admin/keys"`,
		`2`,
	)
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "unknown", sanitizePath(""))
	assert.Equal(t, "/v1/tts", sanitizePath("/v1/tts"))
}
