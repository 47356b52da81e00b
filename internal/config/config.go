package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all runtime settings, populated from environment variables.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Stock    StockConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Env string
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins string
}

type PostgresConfig struct {
	DSN string
}

type AuthConfig struct {
	JWTSecret string
}

type StockConfig struct {
	LowStockThreshold decimal.Decimal
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are required; everything else has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOW_STOCK_THRESHOLD", "10")
	v.SetDefault("METRICS_ENABLED", true)

	dsn := v.GetString("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	threshold, err := decimal.NewFromString(v.GetString("LOW_STOCK_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD: %w", err)
	}

	return &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		HTTP: HTTPConfig{
			Addr:           v.GetString("HTTP_ADDR"),
			AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		},
		Postgres: PostgresConfig{
			DSN: dsn,
		},
		Auth: AuthConfig{
			JWTSecret: secret,
		},
		Stock: StockConfig{
			LowStockThreshold: threshold,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}, nil
}
