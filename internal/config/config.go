// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds everything main needs to wire the application.
type Config struct {
	Addr        string `validate:"required"`
	WebDir      string `validate:"required"`
	DatabaseURL string `validate:"required_if=Store postgres"`
	Store       string `validate:"oneof=postgres memory"`
	SessionFile string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	TZName      string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads an optional env file (ENV_FILE, default .env) and then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	envFile := env("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		Addr:        env("ADDR", ":8080"),
		WebDir:      env("WEB_DIR", "web"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Store:       env("STORE", StorePostgres),
		SessionFile: env("SESSION_FILE", defaultSessionFile()),
		LogLevel:    env("LOG_LEVEL", "info"),
		TZName:      os.Getenv("TZ_NAME"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: TZ_NAME: %w", err)
	}
	return nil
}

// Location resolves TZName. An empty name keeps time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.TZName == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TZName)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "weighttrack-session.json"
	}
	return filepath.Join(dir, "weighttrack", "session.json")
}
