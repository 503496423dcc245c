// Package config provides centralized configuration management for gocentral.
// Configuration merges three layers: built-in defaults, a YAML config file
// (--config flag or ~/.gocentral/config.yaml) and CENTRAL_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "CENTRAL"

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Load reads configuration from the given file (empty means the default
// search paths) plus CENTRAL_* environment variables. It is safe to call
// multiple times; the last loaded config wins.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gocentral"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = defaultStorePath()
	}

	setConfig(cfg)

	return cfg, nil
}

// GetConfig returns the current application configuration (thread-safe).
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cluster", "")
	v.SetDefault("base_url", "")
	v.SetDefault("token.cache", "file")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("retry.max_retries", 1)
	v.SetDefault("retry.initial_wait", 2*time.Second)
	v.SetDefault("retry.max_wait", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("store.driver", "libsql")
}

// bindEnvKeys registers the env aliases explicitly so AutomaticEnv picks
// them up even when the key is absent from both defaults and the file.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"cluster",
		"base_url",
		"client_id",
		"client_secret",
		"customer_id",
		"token.access_token",
		"token.refresh_token",
		"token.cache",
		"token.dir",
		"store.driver",
		"store.path",
		"store.url",
		"store.auth_token",
		"http.timeout",
		"retry.max_retries",
		"retry.initial_wait",
		"retry.max_wait",
		"logging.level",
		"logging.format",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gocentral", "gocentral.db")
	}
	return filepath.Join(home, ".gocentral", "gocentral.db")
}
