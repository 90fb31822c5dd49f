package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProfilesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_profiles_generated_total",
			Help: "Total number of customer profiles generated, by template",
		},
		[]string{"template"},
	)

	InputsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_inputs_rejected_total",
			Help: "Total number of submissions rejected before generation, by reason",
		},
		[]string{"reason"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "icp_generation_duration_seconds",
			Help:    "Duration of profile generation in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 2.5, 5, 10, 30},
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_http_requests_total",
			Help: "Total number of HTTP requests, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// Rejection reasons.
const (
	ReasonEmptyInput   = "empty_input"
	ReasonInFlight     = "in_flight"
	ReasonInvalidInput = "invalid_request"
)

// ObserveGeneration records a finished generation.
func ObserveGeneration(template string, elapsed time.Duration) {
	ProfilesGenerated.WithLabelValues(template).Inc()
	GenerationDuration.Observe(elapsed.Seconds())
}

func RecordRejection(reason string) {
	InputsRejected.WithLabelValues(reason).Inc()
}

// Middleware counts requests by matched route so path parameters do not
// blow up label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the default Prometheus registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
