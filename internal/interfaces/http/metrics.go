package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores Prometheus de la API. Las transiciones se cuentan en el
// handler (aceptadas y rechazadas); los fallos de rollup los incrementa el
// caso de uso vía el puerto Counter.
type Metrics struct {
	registry *prometheus.Registry

	TransitionsTotal    *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	RollupFailures      prometheus.Counter
}

// NewMetrics registra los contadores en un registry propio (aislado de los
// colectores globales, útil en tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_transitions_total",
			Help: "Transiciones de estado de entregas aplicadas, por estado destino.",
		}, []string{"to"}),
		TransitionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_transitions_rejected_total",
			Help: "Transiciones de estado rechazadas, por motivo (invalid, locked).",
		}, []string{"reason"}),
		RollupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollup_failures_total",
			Help: "Fallos al recomputar agregados de orden/proyecto tras un cambio.",
		}),
	}
}

// Handler expone el endpoint /metrics en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
