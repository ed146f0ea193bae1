package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "postgres://localhost/packmarket?sslmode=disable")
	t.Setenv("SERVER_ADDRESS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
}

func TestLoadMissingConn(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "POSTGRES_CONN")
}
