package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
)

var (
	// pages served by the front end
	pageRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semprod_page_requests_total",
			Help: "Total number of page requests",
		},
		[]string{"route", "method", "status"},
	)
	pageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semprod_page_duration_seconds",
			Help:    "Page request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// calls to the catalog backend
	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semprod_backend_requests_total",
			Help: "Total number of catalog backend calls",
		},
		[]string{"endpoint", "outcome"},
	)
	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semprod_backend_duration_seconds",
			Help:    "Catalog backend call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(pageRequests, pageDuration)
	prometheus.MustRegister(backendRequests, backendDuration)
}

func ObservePage(route, method string, status int, elapsed time.Duration) {
	pageRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	pageDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func ObserveBackend(endpoint, outcome string, elapsed time.Duration) {
	backendRequests.WithLabelValues(endpoint, outcome).Inc()
	backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
