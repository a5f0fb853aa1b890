package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.Invalid("quantity", "debe ser mayor que cero"), fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", fmt.Errorf("repuesto X: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"stock insuficiente", &domain.InsufficientStockError{PartID: "P1", Requested: 5, Available: 2}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"almacenamiento", domain.StoreFailure("commit", errors.New("conn reset")), fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"desconocido", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, logger.Nop(), tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.code == "INSUFFICIENT_STOCK" {
				require.NotNil(t, body.Available)
				assert.Equal(t, 2, *body.Available)
			}
		})
	}
}

func TestMovementFilter_Query(t *testing.T) {
	app := fiber.New()
	var got dto.MovementFilter
	app.Get("/", func(c *fiber.Ctx) error {
		f, err := movementFilter(c)
		if err != nil {
			return writeError(c, logger.Nop(), err)
		}
		got = f
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?year=2025&month=3&foc=non_foc&machine_id=7&from=2025-03-01&limit=50&q=bac", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, "non_foc", got.FOC)
	require.NotNil(t, got.MachineID)
	assert.Equal(t, int64(7), *got.MachineID)
	require.NotNil(t, got.From)
	assert.Equal(t, 50, got.Page.Limit)
	assert.Equal(t, "bac", got.Search)

	resp, err = app.Test(httptest.NewRequest("GET", "/?machine_id=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
