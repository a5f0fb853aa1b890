package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// LogObserver registra cada solicitud del motor en el log estructurado.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver construye el observador.
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log.Component("ledger")}
}

func (o *LogObserver) MovementRecorded(_ context.Context, req entity.MovementRequest, res *MovementResult) {
	o.log.Info().
		Str("request_id", res.RequestID).
		Str("part_id", string(req.PartID)).
		Str("direction", string(req.Direction)).
		Str("actor_id", string(req.ActorID)).
		Str("reason", req.Reason).
		Int("quantity", req.Quantity).
		Int64("movement_id", int64(res.MovementID)).
		Bool("merged", res.Merged).
		Int("stock_after", res.StockAfter).
		Msg("movimiento registrado")
}

func (o *LogObserver) MovementRejected(_ context.Context, req entity.MovementRequest, err error) {
	ev := o.log.Warn()
	if errors.Is(err, domain.ErrStoreFailure) {
		ev = o.log.Error()
	}
	ev.Err(err).
		Str("part_id", string(req.PartID)).
		Str("direction", string(req.Direction)).
		Str("actor_id", string(req.ActorID)).
		Int("quantity", req.Quantity).
		Msg("movimiento rechazado")
}
