package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the complete system configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Auth     AuthConfig     `json:"auth"`
	Sweep    SweepConfig    `json:"sweep"`
	Seed     SeedConfig     `json:"seed"`
}

// ServerConfig for the HTTP API server
type ServerConfig struct {
	Port        int    `json:"port"`
	Environment string `json:"environment"` // "development" or "production"
}

// DatabaseConfig for the relational store
type DatabaseConfig struct {
	Driver   string `json:"driver"` // "postgres" or "sqlite"
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"-"`
	Name     string `json:"name"`
	SSLMode  string `json:"ssl_mode"`
	Path     string `json:"path"` // sqlite file path
}

// AuthConfig for JWT issuance
type AuthConfig struct {
	JWTSecret   string        `json:"-"`
	TokenExpiry time.Duration `json:"token_expiry"`
}

// SweepConfig for the lease expiration scheduler
type SweepConfig struct {
	Interval time.Duration `json:"interval"`
}

// SeedConfig holds the bootstrap admin credentials
type SeedConfig struct {
	AdminPhone    string `json:"admin_phone"`
	AdminPassword string `json:"-"`
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", 3000),
			Environment: getEnvString("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnvString("DB_DRIVER", "postgres"),
			Host:     getEnvString("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnvString("DB_USER", "postgres"),
			Password: getEnvString("DB_PASSWORD", ""),
			Name:     getEnvString("DB_NAME", "rental_backoffice"),
			SSLMode:  getEnvString("DB_SSLMODE", "disable"),
			Path:     getEnvString("DB_PATH", "data/rental.db"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnvString("JWT_SECRET", "your-secret-key"),
			TokenExpiry: getEnvDuration("TOKEN_EXPIRY", time.Hour),
		},
		Sweep: SweepConfig{
			Interval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
		},
		Seed: SeedConfig{
			AdminPhone:    getEnvString("SU_PHONE", ""),
			AdminPassword: getEnvString("SU_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// String returns a pretty-printed JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}

	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("invalid sweep interval: %s", c.Sweep.Interval)
	}

	return nil
}
