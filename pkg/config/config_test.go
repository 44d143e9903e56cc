package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	assert.False(t, cfg.Storage.EnforceStock)
	assert.Equal(t, config.DeliveryNone, cfg.Report.Delivery)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "CSV")
	t.Setenv("DATA_DIR", "/tmp/bodega")
	t.Setenv("CSV_ENCODING", "latin1")
	t.Setenv("ENFORCE_STOCK", "true")
	t.Setenv("REPORT_DELIVERY", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_TTL", "90m")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/bodega", cfg.Storage.DataDir)
	assert.Equal(t, "latin1", cfg.Storage.CSVEncoding)
	assert.True(t, cfg.Storage.EnforceStock)
	assert.Equal(t, config.DeliveryRedis, cfg.Report.Delivery)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, 90*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_ValoresInvalidos(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaContraseña(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/wd", DBName: "warehouse", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fwd@db:5432/warehouse?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
