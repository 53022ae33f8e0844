// Package metrics owns the Prometheus registry exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	webhookDispatch   *prometheus.CounterVec
	webhookInbound    *prometheus.CounterVec
	itemsCreated      prometheus.Counter
	maintenanceLogged prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homekeeper",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "homekeeper",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		webhookDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homekeeper",
			Name:      "webhook_dispatch_total",
			Help:      "Outbound webhook dispatches by event and outcome.",
		}, []string{"event", "status"}),
		webhookInbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homekeeper",
			Name:      "webhook_inbound_total",
			Help:      "Inbound automation callbacks by endpoint.",
		}, []string{"endpoint"}),
		itemsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "homekeeper",
			Name:      "items_created_total",
			Help:      "Items created.",
		}),
		maintenanceLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "homekeeper",
			Name:      "maintenance_logged_total",
			Help:      "Maintenance records logged.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.webhookDispatch,
		m.webhookInbound,
		m.itemsCreated,
		m.maintenanceLogged,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency under the matched route
// template, never the raw path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// The recorders below are no-ops on a nil *Metrics so services can run
// without a registry in tests.

func (m *Metrics) WebhookDispatched(event, status string) {
	if m == nil {
		return
	}
	m.webhookDispatch.WithLabelValues(event, status).Inc()
}

func (m *Metrics) WebhookReceived(endpoint string) {
	if m == nil {
		return
	}
	m.webhookInbound.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) ItemCreated() {
	if m == nil {
		return
	}
	m.itemsCreated.Inc()
}

func (m *Metrics) MaintenanceLogged() {
	if m == nil {
		return
	}
	m.maintenanceLogged.Inc()
}
