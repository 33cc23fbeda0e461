// Package metrics expone métricas Prometheus del proveedor de pines, el backend y el API HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de una llamada saliente.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // respuesta HTTP o estado no esperado
	OutcomeError    = "error"    // red, timeout o cuerpo ilegible
)

// Metrics colectores de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	ProviderCalls    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	PinsIssued       prometheus.Counter
	BackendCalls     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registra los colectores. namespace puede ser vacío.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pin_provider_calls_total",
			Help:      "Llamadas al API del proveedor de pines por operación y resultado",
		}, []string{"operation", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pin_provider_call_duration_seconds",
			Help:      "Duración de las llamadas al proveedor de pines",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		PinsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pins_issued_total",
			Help:      "Pines capturados al proveedor",
		}),
		BackendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Llamadas al backend REST por operación y código HTTP",
		}, []string{"operation", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones atendidas por el API",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones atendidas por el API",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(
		m.ProviderCalls, m.ProviderDuration, m.PinsIssued, m.BackendCalls,
		m.HTTPRequests, m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry registry de los colectores (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveProvider registra una llamada al proveedor.
func (m *Metrics) ObserveProvider(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// AddPins suma pines capturados.
func (m *Metrics) AddPins(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PinsIssued.Add(float64(n))
}

// ObserveBackend registra una llamada al backend; status 0 = error de red.
func (m *Metrics) ObserveBackend(operation string, status int) {
	if m == nil {
		return
	}
	m.BackendCalls.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// Middleware mide cada petición por ruta registrada (no por URL cruda).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
