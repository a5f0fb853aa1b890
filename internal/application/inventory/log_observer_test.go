package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func TestLogObserver_UnSoloComponente(t *testing.T) {
	var buf bytes.Buffer
	obs := inventory.NewLogObserver(logger.New(logger.Config{Env: "test", Output: &buf}))

	obs.MovementRecorded(context.Background(), importReq("A-100", 3, baseTime), &inventory.MovementResult{
		RequestID: "r-1", MovementID: 9, StockAfter: 3,
	})

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, 1, strings.Count(line, `"component"`), line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, "A-100", entry["part_id"])
	assert.Equal(t, "movimiento registrado", entry["message"])
}

func TestLogObserver_FalloDeAlmacenamientoEsError(t *testing.T) {
	var buf bytes.Buffer
	obs := inventory.NewLogObserver(logger.New(logger.Config{Env: "test", Output: &buf}))

	obs.MovementRejected(context.Background(), importReq("A-100", 3, baseTime), domain.ErrStoreFailure)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
}
