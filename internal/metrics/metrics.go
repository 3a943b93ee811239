// Package metrics holds the Prometheus collectors of the careers service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careers",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	applicationsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "applications",
			Name:      "submitted_total",
			Help:      "Application submissions by outcome.",
		},
		[]string{"outcome"},
	)

	statusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "applications",
			Name:      "status_updates_total",
			Help:      "Successful status changes by new status.",
		},
		[]string{"status"},
	)

	adminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "admin",
			Name:      "logins_total",
			Help:      "Admin login attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		applicationsSubmitted,
		statusUpdates,
		adminLogins,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// ApplicationSubmitted records a submission outcome: "created", "invalid"
// or "failed".
func ApplicationSubmitted(outcome string) {
	applicationsSubmitted.WithLabelValues(outcome).Inc()
}

func StatusUpdated(status string) {
	statusUpdates.WithLabelValues(status).Inc()
}

func AdminLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	adminLogins.WithLabelValues(result).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
