package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	router   *mux.Router
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, router *mux.Router) *metrics {
	m := &metrics{
		router: router,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobly",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobly",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// route returns the path template of the route r would be dispatched to, or
// "unknown" for unmatched paths and methods.
func (m *metrics) route(r *http.Request) string {
	var match mux.RouteMatch
	if !m.router.Match(r, &match) || match.MatchErr != nil || match.Route == nil {
		return "unknown"
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}
	return tpl
}

// Middleware labels by route template so path parameters do not explode the
// label space.
func (m *metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := m.route(r)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
