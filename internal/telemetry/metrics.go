package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_scheduler"

var (
	// APIRequestsTotal количество HTTP запросов
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// APIRequestDuration длительность HTTP запросов
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// SlotsCreated количество вставленных слотов по типу владельца
	SlotsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_created_total",
		Help:      "Slots inserted by owner kind (candidate, employee, both).",
	}, []string{"owner"})

	// AvailabilityQueries запросы пересечения по результату
	AvailabilityQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_queries_total",
		Help:      "Availability intersection queries by result (ok, invalid, cache_hit).",
	}, []string{"result"})
)

// Handler отдаёт метрики в формате prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
