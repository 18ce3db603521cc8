package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LoginsTotal counts login attempts by outcome (success, failure).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// PostMutationsTotal counts blog post mutations by action (create, update, delete).
	PostMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_mutations_total",
			Help: "Total number of blog post mutations by action",
		},
		[]string{"action"},
	)
)

var (
	// idPathSegment matches opaque id segments (uuids, hex keys) so metric
	// label cardinality stays bounded.
	idPathSegment = regexp.MustCompile(`/[0-9a-fA-F-]{16,}(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, LoginsTotal, PostMutationsTotal)
	})
}

// NormalizePath reduces cardinality by replacing id path segments with {id}.
// E.g. /blog/7f9c24e8-... -> /blog/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncLogins increments the login counter for the given outcome (success, failure).
func IncLogins(outcome string) {
	LoginsTotal.WithLabelValues(outcome).Inc()
}

// IncPostMutations increments the post mutation counter for the given action (create, update, delete).
func IncPostMutations(action string) {
	PostMutationsTotal.WithLabelValues(action).Inc()
}
