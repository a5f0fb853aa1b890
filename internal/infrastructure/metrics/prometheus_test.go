package metrics_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/metrics"
)

func TestMetrics_ObservaMovimientos(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctx := context.Background()
	req := entity.MovementRequest{PartID: "P1", Quantity: 4, Direction: entity.DirectionExport}

	m.MovementRecorded(ctx, req, &inventory.MovementResult{Merged: true})
	m.MovementRecorded(ctx, req, &inventory.MovementResult{})
	m.MovementRejected(ctx, req, &domain.InsufficientStockError{PartID: "P1", Requested: 4, Available: 1})

	n, err := testutil.GatherAndCount(reg, "repuestos_ledger_movements_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "una serie por combinación de etiquetas")

	expected := `
# HELP repuestos_ledger_quantity_total Unidades registradas en el ledger por sentido
# TYPE repuestos_ledger_quantity_total counter
repuestos_ledger_quantity_total{direction="EXPORT"} 8
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "repuestos_ledger_quantity_total"))
}

func TestMetrics_MiddlewareUsaRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/parts/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/parts/A-100", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	n, err := testutil.GatherAndCount(reg, "repuestos_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
