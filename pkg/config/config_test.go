package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "delivery-service", cfg.ServiceName)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "images", cfg.Storage.Bucket)
	assert.Equal(t, 0, cfg.JWT.ExpirationHours)
	assert.Equal(t, logger.Warn, cfg.DB.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("STORAGE_ENDPOINT", "https://files.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, "https://files.example.com", cfg.Storage.Endpoint)
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Password: "pw",
		DBName:   "delivery",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=pw dbname=delivery sslmode=require",
		cfg.GetDSN())
}
