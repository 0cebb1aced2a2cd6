package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "data.db", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.False(t, cfg.ReverseOnContractDelete)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "4100")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/estate")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SCHEDULE_MAINTENANCE_INSTALLMENT", "true")
	t.Setenv("LEDGER_REVERSE_ON_CONTRACT_DELETE", "1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost/estate", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MaintenanceInstallment)
	assert.False(t, cfg.AnnualInstallments)
	assert.True(t, cfg.ReverseOnContractDelete)
	assert.True(t, cfg.LogPretty)
}
