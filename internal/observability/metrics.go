package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curricula_http_requests_total",
			Help: "Number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curricula_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	prerequisiteChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curricula_prerequisite_checks_total",
			Help: "Number of prerequisite proposals checked, by outcome.",
		},
		[]string{"outcome"},
	)
	prerequisiteViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curricula_prerequisite_violations_total",
			Help: "Number of rejected prerequisites by violation code.",
		},
		[]string{"code"},
	)

	auditFindings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "curricula_audit_findings",
			Help: "Integrity problems found in a programme by the last audit.",
		},
		[]string{"programme"},
	)

	graphCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curricula_graph_cache_total",
			Help: "Rendered graph cache lookups by result.",
		},
		[]string{"result"},
	)

	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "curricula_rate_limited_total",
			Help: "Total number of requests refused by the rate limiter.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		prerequisiteChecksTotal,
		prerequisiteViolationsTotal,
		auditFindings,
		graphCacheTotal,
		rateLimitedTotal,
	)
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePrerequisiteCheck records the outcome of one validation and the codes
// of any violations.
func ObservePrerequisiteCheck(codes []string) {
	if len(codes) == 0 {
		prerequisiteChecksTotal.WithLabelValues("accepted").Inc()
		return
	}
	prerequisiteChecksTotal.WithLabelValues("rejected").Inc()
	for _, code := range codes {
		prerequisiteViolationsTotal.WithLabelValues(code).Inc()
	}
}

// SetAuditFindings publishes the number of problems found in a programme.
func SetAuditFindings(programmeID int64, findings int) {
	auditFindings.WithLabelValues(strconv.FormatInt(programmeID, 10)).Set(float64(findings))
}

// ObserveGraphCache counts a cache hit or miss.
func ObserveGraphCache(hit bool) {
	if hit {
		graphCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	graphCacheTotal.WithLabelValues("miss").Inc()
}

// ObserveRateLimited counts a refused request.
func ObserveRateLimited() {
	rateLimitedTotal.Inc()
}
