// Package metrics expone contadores Prometheus del motor de inventario.
// Todos los métodos aceptan receptor nil para que los casos de uso funcionen sin métricas (tests).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la aplicación sobre un registry propio.
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	MovementsRecorded *prometheus.CounterVec
	UnitsMoved        *prometheus.CounterVec
	Transitions       *prometheus.CounterVec
	TxConflicts       prometheus.Counter
	TxRetries         prometheus.Counter
}

// Config nombre del servicio y namespace de las métricas.
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig configuración por defecto (namespace "wms").
func DefaultConfig(serviceName string) Config {
	return Config{ServiceName: serviceName, Namespace: "wms"}
}

// New crea y registra los colectores.
func New(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{serviceName: cfg.ServiceName, registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de peticiones HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"service", "method", "path"},
	)
	m.MovementsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock registrados por tipo",
		},
		[]string{"service", "type"},
	)
	m.UnitsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "stock_units_moved_total",
			Help:      "Unidades movidas por tipo de movimiento",
		},
		[]string{"service", "type"},
	)
	m.Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "workflow_transitions_total",
			Help:      "Transiciones de pedidos y órdenes de compra por resultado",
		},
		[]string{"service", "workflow", "transition", "outcome"},
	)
	m.TxConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "tx_conflicts_total",
			Help:        "Unidades de trabajo abortadas por conflicto de concurrencia",
			ConstLabels: prometheus.Labels{"service": cfg.ServiceName},
		},
	)
	m.TxRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "tx_retries_total",
			Help:        "Reintentos de unidades de trabajo tras conflicto",
			ConstLabels: prometheus.Labels{"service": cfg.ServiceName},
		},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MovementsRecorded,
		m.UnitsMoved,
		m.Transitions,
		m.TxConflicts,
		m.TxRetries,
	)
	return m
}

// Handler handler HTTP para el endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry devuelve el registry de Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest registra una petición HTTP.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordMovement registra un movimiento de stock y sus unidades.
func (m *Metrics) RecordMovement(movementType string, quantity int) {
	if m == nil {
		return
	}
	m.MovementsRecorded.WithLabelValues(m.serviceName, movementType).Inc()
	m.UnitsMoved.WithLabelValues(m.serviceName, movementType).Add(float64(quantity))
}

// RecordTransition registra el resultado de una transición de flujo (ok, rejected, error).
func (m *Metrics) RecordTransition(workflow, transition string, err error) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(m.serviceName, workflow, transition, Outcome(err)).Inc()
}

// RecordConflict registra una unidad de trabajo perdida por concurrencia.
func (m *Metrics) RecordConflict() {
	if m == nil {
		return
	}
	m.TxConflicts.Inc()
}

// RecordRetry registra un reintento de unidad de trabajo.
func (m *Metrics) RecordRetry() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}

// Outcome etiqueta de resultado para un error.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
