package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("PIN_API_BASE_URL", "https://pines.example")
	t.Setenv("BACKEND_BASE_URL", "https://backend.example")
	t.Setenv("PIN_API_CHUNK_TIMEOUT_SECONDS", "7")
	t.Setenv("PIN_API_FAULT_POLICY", "fail-fast")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.PinAPI.ChunkTimeout)
	assert.Equal(t, "fail-fast", cfg.PinAPI.FaultPolicy)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
}

func TestLoad_Validacion(t *testing.T) {
	t.Setenv("PIN_API_BASE_URL", "https://pines.example")
	t.Setenv("BACKEND_BASE_URL", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BACKEND_BASE_URL", "https://backend.example")
	t.Setenv("PIN_API_FAULT_POLICY", "a-veces")
	_, err = Load()
	assert.Error(t, err)
}

func TestDSN_Formato(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "pines", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/pines?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.DSN())
}

func TestLocation_ZonaPorDefecto(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Nada/Existe"}.Location())
	assert.Equal(t, "America/Bogota", AppConfig{Timezone: "America/Bogota"}.Location().String())
}

func TestLoadPinAPI_SinBackend(t *testing.T) {
	t.Setenv("PIN_API_BASE_URL", "https://pines.example")
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("PIN_API_FAULT_POLICY", "best-effort")

	cfg, err := LoadPinAPI()
	require.NoError(t, err)
	assert.Equal(t, "https://pines.example", cfg.PinAPI.BaseURL)

	t.Setenv("PIN_API_BASE_URL", "")
	_, err = LoadPinAPI()
	assert.Error(t, err)
}
