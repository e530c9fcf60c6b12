package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.MigrateOnUp)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "5433", DBName: "catalog",
	}
	assert.Equal(t, "postgres://app:pw@db:5433/catalog?sslmode=disable", cfg.GetDBConnString())
}
