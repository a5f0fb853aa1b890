// Package metrics expone métricas Prometheus del motor de conciliación y de la API HTTP.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

var _ inventory.MovementObserver = (*Metrics)(nil)

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	movements      *prometheus.CounterVec
	movedQuantity  *prometheus.CounterVec
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New crea y registra los colectores en reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		movements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repuestos_ledger_movements_total",
				Help: "Solicitudes de movimiento procesadas por el motor, por sentido y resultado",
			},
			[]string{"direction", "outcome"},
		),
		movedQuantity: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repuestos_ledger_quantity_total",
				Help: "Unidades registradas en el ledger por sentido",
			},
			[]string{"direction"},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repuestos_http_requests_total",
				Help: "Total de solicitudes HTTP",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repuestos_http_request_duration_seconds",
				Help:    "Duración de las solicitudes HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(m.movements, m.movedQuantity, m.requestCounter, m.requestLatency)
	return m
}

func (m *Metrics) MovementRecorded(_ context.Context, req entity.MovementRequest, res *inventory.MovementResult) {
	outcome := "created"
	if res.Merged {
		outcome = "merged"
	}
	m.movements.WithLabelValues(string(req.Direction), outcome).Inc()
	m.movedQuantity.WithLabelValues(string(req.Direction)).Add(float64(req.Quantity))
}

func (m *Metrics) MovementRejected(_ context.Context, req entity.MovementRequest, err error) {
	m.movements.WithLabelValues(string(req.Direction), rejectOutcome(err)).Inc()
}

func rejectOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrStoreFailure):
		return "store_failure"
	default:
		return "error"
	}
}

// Middleware mide cada solicitud HTTP usando la ruta registrada (no la URL) como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
