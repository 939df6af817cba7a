package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal container images

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
}

// AppConfig contains HTTP and runtime settings.
type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	Timezone string
}

// DatabaseConfig selects the GORM dialector and its DSN.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// AuthConfig contains staff authentication settings.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AdminUsername  string
	AdminPassword  string
	LoginRateRPS   float64
	LoginRateBurst int
}

// RabbitMQConfig enables AMQP order events when URL is set.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// RedisConfig enables redis pub/sub order events when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// EnvDevelopment relaxes the JWT secret requirement.
const EnvDevelopment = "development"

const devJWTSecret = "dev-secret-change-me"

var keys = map[string]any{
	"APP_PORT":          ":8080",
	"APP_ENV":           "production",
	"LOG_LEVEL":         "info",
	"TIMEZONE":          "Europe/Istanbul",
	"DB_DRIVER":         "sqlite",
	"DATABASE_DSN":      "okul.db",
	"JWT_SECRET":        "",
	"TOKEN_TTL":         "24h",
	"ADMIN_USERNAME":    "",
	"ADMIN_PASSWORD":    "",
	"LOGIN_RATE_RPS":    1.0,
	"LOGIN_RATE_BURST":  5,
	"RABBITMQ_URL":      "",
	"RABBITMQ_EXCHANGE": "order_events",
	"RABBITMQ_QUEUE":    "order_status_queue",
	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"REDIS_CHANNEL":     "order_events",
}

// Load reads configuration from the environment and an optional config file.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for k, def := range keys {
		v.SetDefault(k, def)
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Timezone: v.GetString("TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			TokenTTL:       v.GetDuration("TOKEN_TTL"),
			AdminUsername:  v.GetString("ADMIN_USERNAME"),
			AdminPassword:  v.GetString("ADMIN_PASSWORD"),
			LoginRateRPS:   v.GetFloat64("LOGIN_RATE_RPS"),
			LoginRateBurst: v.GetInt("LOGIN_RATE_BURST"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
			Queue:    v.GetString("RABBITMQ_QUEUE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Channel:  v.GetString("REDIS_CHANNEL"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.App.Env != EnvDevelopment {
			return fmt.Errorf("JWT_SECRET is not set; required outside %s", EnvDevelopment)
		}
		c.Auth.JWTSecret = devJWTSecret
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres", "mysql":
		c.Database.Driver = strings.ToLower(c.Database.Driver)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the configured display time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// String returns a representation with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, Env: %s, DB: %s, AMQP: %t, Redis: %t, Auth: *** (masked) ***}",
		c.App.Port, c.App.Env, c.Database.Driver, c.RabbitMQ.URL != "", c.Redis.Addr != "")
}
