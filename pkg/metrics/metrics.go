package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests processed, by route and status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{duration: duration, requests: requests}
}

// ObserveRequest records one completed request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	method = normalizeLabel(method)
	route = normalizeLabel(route)
	h.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// CheckoutMetrics counts checkout outcomes.
type CheckoutMetrics struct {
	completed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	failed    prometheus.Counter
	revenue   prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Successful checkouts.",
	}, []string{})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Checkouts rejected before any write.",
	}, []string{"reason"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Checkouts aborted by a write failure.",
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_revenue_cents_total",
		Help: "Total paid across successful checkouts, in centavos.",
	})
	reg.MustRegister(completed, rejected, failed, revenue)
	return &CheckoutMetrics{completed: completed, rejected: rejected, failed: failed, revenue: revenue}
}

// IncCompleted records a successful checkout and its total.
func (c *CheckoutMetrics) IncCompleted(totalCents int64) {
	if c == nil || c.completed == nil {
		return
	}
	c.completed.WithLabelValues().Inc()
	if totalCents > 0 {
		c.revenue.Add(float64(totalCents))
	}
}

// IncRejected records a precondition rejection.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncFailed records a write-path failure.
func (c *CheckoutMetrics) IncFailed() {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
