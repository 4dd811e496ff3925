package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "patientcare-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "Patient Care Clinic", cfg.Clinic.Name)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "dbname=patientcare")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_CLINIC_NAME", "Nordsee Praxis")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "Nordsee Praxis", cfg.Clinic.Name)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
}

func TestLoadRejectsProductionMisconfiguration(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_SSLMODE")
}
