package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider owns the application's prometheus registry and collectors.
type Provider struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	serviceHealth   prometheus.Gauge
}

func NewProvider() *Provider {
	registry := prometheus.NewRegistry()

	p := &Provider{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "HTTP requests handled, by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request latency, by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		serviceHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobboard_service_healthy",
			Help: "Whether the service considers itself healthy.",
		}),
	}

	registry.MustRegister(p.requestsTotal, p.requestDuration, p.serviceHealth)
	return p
}

func (p *Provider) SetServiceHealth(healthy bool) {
	if healthy {
		p.serviceHealth.Set(1)
	} else {
		p.serviceHealth.Set(0)
	}
}

// Middleware records per-request counters and latency. Unmatched routes are
// labeled by raw path so 404 scans don't explode label cardinality per route.
func (p *Provider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		p.requestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		p.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics endpoint for this provider's registry.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
