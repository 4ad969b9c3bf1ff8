// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by every configuration variable.
const EnvPrefix = "PORTPANEL_"

// Accepted values for the enumerated settings.
const (
	UserStoreMemory = "memory"
	UserStoreSQLite = "sqlite"

	PasswordSchemePlaintext = "plaintext"
	PasswordSchemeBcrypt    = "bcrypt"

	LogFormatJSON = "json"
	LogFormatText = "text"

	EnvironmentLocal = "local"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	Environment    string        `koanf:"environment"`
	ListenAddr     string        `koanf:"listen_addr"`
	DBPath         string        `koanf:"db_path"`
	TokenSecret    string        `koanf:"token_secret"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
	UserStore      string        `koanf:"user_store"`
	PasswordScheme string        `koanf:"password_scheme"`
	LogLevel       string        `koanf:"log_level"`
	LogFormat      string        `koanf:"log_format"`
}

func defaults() *Config {
	return &Config{
		Environment:    EnvironmentLocal,
		ListenAddr:     "127.0.0.1:8000",
		DBPath:         "ports.db",
		TokenTTL:       time.Hour,
		UserStore:      UserStoreMemory,
		PasswordScheme: PasswordSchemePlaintext,
		LogLevel:       "info",
		LogFormat:      LogFormatJSON,
	}
}

// Load reads PORTPANEL_* environment variables over the compiled defaults and
// returns a validated Config. PORTPANEL_TOKEN_SECRET may only be omitted in
// the local environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsLocal returns true when running in the local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == EnvironmentLocal
}

// PersistUsers reports whether accounts survive a restart.
func (c *Config) PersistUsers() bool {
	return c.UserStore == UserStoreSQLite
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token_ttl must be positive, got %s", ErrInvalid, c.TokenTTL)
	}
	if c.TokenSecret == "" && !c.IsLocal() {
		return fmt.Errorf("%w: token_secret is required outside the local environment", ErrInvalid)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr is empty", ErrInvalid)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is empty", ErrInvalid)
	}
	if !slices.Contains([]string{UserStoreMemory, UserStoreSQLite}, c.UserStore) {
		return fmt.Errorf("%w: user_store %q", ErrInvalid, c.UserStore)
	}
	if !slices.Contains([]string{PasswordSchemePlaintext, PasswordSchemeBcrypt}, c.PasswordScheme) {
		return fmt.Errorf("%w: password_scheme %q", ErrInvalid, c.PasswordScheme)
	}
	if !slices.Contains([]string{LogFormatJSON, LogFormatText}, c.LogFormat) {
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
