package config

import (
	"errors"
	"strings"
	"time"

	"github.com/gocentral/gocentral/internal/central"
)

// Config is the complete application configuration, merged from the config
// file, environment variables (CENTRAL_ prefix) and command line flags.
type Config struct {
	// Cluster selects a known Central cluster by name ("US-1", "EU-1", ...).
	// BaseURL wins when both are set.
	Cluster string `mapstructure:"cluster"`
	BaseURL string `mapstructure:"base_url"`

	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	CustomerID   string `mapstructure:"customer_id"`

	Token   TokenConfig   `mapstructure:"token"`
	Store   StoreConfig   `mapstructure:"store"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TokenConfig seeds the token pair and selects where refreshed tokens are
// persisted.
type TokenConfig struct {
	AccessToken  string `mapstructure:"access_token"`
	RefreshToken string `mapstructure:"refresh_token"`

	// Cache selects the token store backend: "file" (default), "store"
	// (the libsql store) or "none".
	Cache string `mapstructure:"cache"`

	// Dir overrides the file token store directory.
	Dir string `mapstructure:"dir"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// HTTPConfig tunes the outbound HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RetryConfig tunes the rate limit retry policy.
type RetryConfig struct {
	MaxRetries  int           `mapstructure:"max_retries"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format selects console or json output.
	Format string `mapstructure:"format"`
}

// ResolveBaseURL returns the gateway base URL, preferring an explicit
// BaseURL over the cluster name lookup.
func (c *Config) ResolveBaseURL() (string, error) {
	if c == nil {
		return "", errors.New("configuration is not loaded")
	}
	if url := strings.TrimSpace(c.BaseURL); url != "" {
		return url, nil
	}
	if cluster := strings.TrimSpace(c.Cluster); cluster != "" {
		return central.ClusterBaseURL(cluster)
	}
	return "", errors.New("either base_url or cluster is required")
}

// Validate checks that the loaded configuration can authenticate.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is not loaded")
	}
	if _, err := c.ResolveBaseURL(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return errors.New("client_secret is required")
	}
	switch c.Token.Cache {
	case "", "file", "store", "none":
	default:
		return errors.New("token.cache must be one of file, store, none")
	}
	return nil
}
