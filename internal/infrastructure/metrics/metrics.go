// Package metrics expone contadores Prometheus de reservas, consumos y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/application/production"
)

var _ production.Metrics = (*Metrics)(nil)

// Metrics colectores de la aplicación registrados en un registry propio.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	shortfall  *prometheus.CounterVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New crea y registra los colectores (más Go runtime y proceso).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "korxona",
			Name:      "material_operations_total",
			Help:      "Operaciones de reserva, consumo y liberación por resultado.",
		}, []string{"operation", "outcome"}),
		shortfall: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "korxona",
			Name:      "material_shortfall_units_total",
			Help:      "Unidades requeridas que no pudieron reservarse, por material.",
		}, []string{"material"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "korxona",
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "korxona",
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		m.operations, m.shortfall, m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Record cuenta una operación de materiales.
func (m *Metrics) Record(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveShortfall suma las unidades faltantes de un material.
func (m *Metrics) ObserveShortfall(material string, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	m.shortfall.WithLabelValues(material).Add(qty.InexactFloat64())
}

// Handler handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry registry subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware mide las peticiones de fiber por ruta registrada (no por path concreto).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}
