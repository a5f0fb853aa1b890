package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "day", cfg.Ledger.ExportMergePeriod)
	assert.Equal(t, "month", cfg.Ledger.ImportMergePeriod)
	assert.Equal(t, "FOC", cfg.Ledger.FOCReason)
	assert.True(t, cfg.Ledger.FOCInExportTotals)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_SobrescribeLedger(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_EXPORT_MERGE_PERIOD", "NONE")
	v.Set("LEDGER_FOC_IN_EXPORT_TOTALS", "false")
	v.Set("LEDGER_TIMEZONE", "Asia/Ho_Chi_Minh")
	v.Set("DB_PORT", "6543")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Ledger.ExportMergePeriod)
	assert.False(t, cfg.Ledger.FOCInExportTotals)
	assert.Equal(t, 6543, cfg.DB.Port)

	loc, err := cfg.Ledger.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}

func TestFromViper_FOCReasonVacio(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_FOC_REASON", "  ")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLedgerConfig_TimezoneInvalida(t *testing.T) {
	_, err := LedgerConfig{Timezone: "Marte/Olympus"}.Location()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{User: "app", Password: "p@ss:w/rd", Host: "db", Port: 5432, DBName: "repuestos", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/repuestos?sslmode=disable", c.DSN())
	assert.Equal(t, "postgres://x", DBConfig{DatabaseURL: "postgres://x"}.ConnectionString())
}
