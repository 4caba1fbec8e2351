package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Kassa", cfg.App.Name)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 8080, cfg.DevServer.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://pos.example.com/api/v1")
	t.Setenv("DEVSERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pos.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 9090, cfg.DevServer.Port)
}
