package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndInflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/rooms/:id", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	r.POST("/api/posts", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	okCount := httpReqs.WithLabelValues("GET", "/api/rooms/:id", "200")
	postCount := httpReqs.WithLabelValues("POST", "/api/posts", "204")
	missCount := httpReqs.WithLabelValues("GET", unmatchedPath, "404")
	baseOK, basePost, baseMiss := testutil.ToFloat64(okCount), testutil.ToFloat64(postCount), testutil.ToFloat64(missCount)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rooms/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rooms/2", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"hi"}`)))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(okCount); got != baseOK+2 {
		t.Fatalf("route counter = %v; want %v", got, baseOK+2)
	}
	if got := testutil.ToFloat64(postCount); got != basePost+1 {
		t.Fatalf("post counter = %v; want %v", got, basePost+1)
	}
	if got := testutil.ToFloat64(missCount); got != baseMiss+1 {
		t.Fatalf("unmatched counter = %v; want %v", got, baseMiss+1)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v", got)
	}
	if n := testutil.CollectAndCount(httpReqSize); n == 0 {
		t.Fatalf("request size histogram not observed")
	}
}
