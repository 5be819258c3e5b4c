// Package router builds the gin engine shared by the checkwriter services and
// the middleware attached to it.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/checkwriter/metrics"
)

// Metric names recorded by RecordRequest.
const (
	MetricRequests        = "checkwriter_http_requests_total"
	MetricRequestDuration = "checkwriter_http_request_duration_seconds"
)

// requestBuckets are the latency buckets, in seconds, of MetricRequestDuration.
// Handlers spell words in memory and make at most one Redis call.
var requestBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// DefaultTimeout bounds request processing when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// NewGinRouter returns a gin engine with request logging, request metrics,
// panic recovery and a request timeout attached, in that order. Metrics sit
// outside recovery so that panicking requests are counted as 500s.
func NewGinRouter(logger *logharbour.Logger, m metrics.Metrics, timeout time.Duration) (*gin.Engine, error) {
	if err := m.RegisterWithLabels(MetricRequests, metrics.Counter, "HTTP requests handled", []string{"method", "path", "status"}); err != nil {
		return nil, err
	}
	metrics.SetBuckets(m, MetricRequestDuration, requestBuckets)
	if err := m.RegisterWithLabels(MetricRequestDuration, metrics.Histogram, "HTTP request latency in seconds", []string{"method", "path"}); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := gin.New()
	r.Use(LogRequest(NewLogHarbourAdapter(logger)))
	r.Use(RecordRequest(m))
	r.Use(Recover())
	r.Use(Timeout(timeout))
	return r, nil
}
