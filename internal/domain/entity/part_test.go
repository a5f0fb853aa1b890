package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func TestPart_DaysInStorage(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	imported := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	exported := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	// Con stock: desde la última entrada hasta hoy
	p := entity.Part{Stock: 3, LastImportAt: &imported, LastExportAt: &exported}
	days := p.DaysInStorage(now)
	require.NotNil(t, days)
	assert.Equal(t, 20, *days)

	// Agotado: desde la última entrada hasta la última salida
	p.Stock = 0
	days = p.DaysInStorage(now)
	require.NotNil(t, days)
	assert.Equal(t, 10, *days)

	// Sin entradas no hay dato
	assert.Nil(t, (&entity.Part{}).DaysInStorage(now))
}

func TestPart_BelowSafetyYValor(t *testing.T) {
	p := entity.Part{Stock: 2, SafetyStock: 5, Price: decimal.RequireFromString("12.50")}

	assert.True(t, p.BelowSafety())
	assert.True(t, p.StockValue().Equal(decimal.RequireFromString("25")))

	p.Stock = 5
	assert.False(t, p.BelowSafety(), "igual al stock de seguridad no es incumplimiento")
}
