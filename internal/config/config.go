package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the runtime configuration of the API.
type Config struct {
	Env  string
	Port string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	RabbitMQURL      string
	RabbitMQExchange string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	SeedDemoData bool
}

// IsDevelopment reports whether the API runs outside production-like environments.
func (c Config) IsDevelopment() bool {
	switch c.Env {
	case "development", "local", "test":
		return true
	}
	return false
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:katalog.db?cache=shared")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "katalog.events")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.AutomaticEnv()

	cfg := Config{
		Env:              strings.ToLower(v.GetString("APP_ENV")),
		Port:             v.GetString("APP_PORT"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		AdminUsername:    v.GetString("ADMIN_USERNAME"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		SeedDemoData:     v.GetBool("SEED_DEMO_DATA"),
	}
	if !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		log.Println("Warning: JWT_SECRET is not set, using an insecure development secret")
		cfg.JWTSecret = "katalog-dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the API cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", c.DatabaseDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}
