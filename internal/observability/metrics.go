package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_requests_total",
			Help: "Total de requests a los proxies externos (por proxy y status).",
		},
		[]string{"proxy", "status"},
	)

	ProxyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proxy_request_duration_seconds",
			Help:    "Duración de los requests a los proxies externos.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms → ~25s
		},
		[]string{"proxy"},
	)

	ProxyCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_hits_total",
			Help: "Respuestas de proxy servidas desde la cache.",
		},
		[]string{"proxy"},
	)

	ProductsParsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_products_parsed_total",
			Help: "Total de productos extraídos de los listados.",
		},
	)

	DetailsParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_details_parsed_total",
			Help: "Fichas de producto procesadas (ok o invalid).",
		},
		[]string{"result"},
	)
)

// ObserveProxyRequest records one outbound call. status 0 means the call
// failed before a response arrived.
func ObserveProxyRequest(proxy string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	ProxyRequestsTotal.WithLabelValues(proxy, label).Inc()
	ProxyRequestDuration.WithLabelValues(proxy).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
