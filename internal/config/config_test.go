package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDevelopment)
	t.Setenv("JWT_SECRET", "")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "order_events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "order_status_queue", cfg.RabbitMQ.Queue)
	assert.Equal(t, 5, cfg.Auth.LoginRateBurst)
}

func TestLoad_RequiresJWTSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := load(viper.New())
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=db user=okul")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("REDIS_DB", "3")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=db user=okul", cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "oracle")
	_, err := load(viper.New())
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "topsecret", AdminPassword: "hunter2"}}
	s := cfg.String()
	assert.NotContains(t, s, "topsecret")
	assert.NotContains(t, s, "hunter2")
}
