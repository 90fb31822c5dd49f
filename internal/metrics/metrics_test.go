package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(ProfilesGenerated.WithLabelValues("b2b_saas"))
	ObserveGeneration("b2b_saas", 2*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(ProfilesGenerated.WithLabelValues("b2b_saas")))
}

func TestRecordRejection(t *testing.T) {
	before := testutil.ToFloat64(InputsRejected.WithLabelValues(ReasonEmptyInput))
	RecordRejection(ReasonEmptyInput)
	assert.Equal(t, before+1, testutil.ToFloat64(InputsRejected.WithLabelValues(ReasonEmptyInput)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	router.GET("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200"))
	beforeUnmatched := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "icp_http_requests_total")
}
