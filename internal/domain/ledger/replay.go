package ledger

import "github.com/jhoicas/Repuestos-api/internal/domain/entity"

// Replay recalcula el stock de un repuesto desde cero aplicando todas sus filas del ledger.
// Debe coincidir con Part.Stock en todo momento.
func (p Policy) Replay(movements []entity.Movement) int {
	stock := 0
	for _, m := range movements {
		stock += p.StockDelta(m.Direction, m.Reason, m.Quantity)
	}
	return stock
}

// Drift diferencia entre el stock cacheado y el recalculado para un repuesto.
type Drift struct {
	PartID   entity.PartID
	Cached   int
	Replayed int
}

// Delta cuánto se desvía la caché del ledger (positivo = caché por encima).
func (d Drift) Delta() int {
	return d.Cached - d.Replayed
}
