package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

func TestMovementsFrom_SinFiltros(t *testing.T) {
	query, args, err := movementsFrom(repository.ProjectionQuery{}).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `LEFT JOIN "machines" AS "mc"`)
	assert.Empty(t, args)
}

func TestMovementsFrom_RangoYMaquina(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	machine := entity.MachineID(7)

	query, args, err := movementsFrom(repository.ProjectionQuery{
		From: &from, To: &to, MachineID: &machine, PartID: "A-100",
	}).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, query, `("m"."moved_at" >= $1)`)
	assert.Contains(t, query, `("m"."moved_at" < $2)`)
	assert.Contains(t, query, `"m"."part_id" = $3`)
	assert.Contains(t, query, `"mp"."machine_id" = $4`)
	assert.Equal(t, []interface{}{from, to, "A-100", int64(7)}, args)
}

func TestMovementsFrom_FiltroFOC(t *testing.T) {
	query, args, err := movementsFrom(repository.ProjectionQuery{
		FOC: repository.FOCOnly, FOCReason: "FOC",
	}).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, `(("m"."direction" = $1) AND ("m"."reason" = $2))`)
	assert.Equal(t, []interface{}{"EXPORT", "FOC"}, args)

	query, _, err = movementsFrom(repository.ProjectionQuery{
		FOC: repository.FOCExcluded, FOCReason: "FOC",
	}).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, `(("m"."direction" != $1) OR ("m"."reason" != $2))`)
}

func TestHasCode_ErroresPostgres(t *testing.T) {
	unique := fmt.Errorf("insertar: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.False(t, isUniqueViolation(nil))
}
