package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/config"
	"github.com/gocentral/gocentral/internal/observability"
	"github.com/gocentral/gocentral/internal/output"
	"github.com/gocentral/gocentral/internal/store"
)

// newClient builds the dispatcher from the loaded configuration: base URL
// or cluster, credentials, seed token, token store backend and retry
// policy.
func newClient(ctx context.Context) (*central.Client, error) {
	cfg := appConfig
	if cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	client := central.NewClient(baseURL, cfg.ClientID, cfg.ClientSecret)
	client.CustomerID = cfg.CustomerID

	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client.HTTPClient = &http.Client{Timeout: timeout}

	if cfg.Retry.MaxRetries > 0 || cfg.Retry.InitialWait > 0 {
		client.Retry = central.RetryPolicy{
			MaxRetries:  cfg.Retry.MaxRetries,
			InitialWait: cfg.Retry.InitialWait,
			MaxWait:     cfg.Retry.MaxWait,
		}
	}

	logger, err := observability.NewDispatcherLogger(dispatcherLogLevel(cfg), cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	client.Logger = logger

	if cfg.Token.AccessToken != "" || cfg.Token.RefreshToken != "" {
		client.Token = &central.Token{
			AccessToken:  cfg.Token.AccessToken,
			RefreshToken: cfg.Token.RefreshToken,
		}
	}

	tokenStore, err := newTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client.Store = tokenStore

	return client, nil
}

func dispatcherLogLevel(cfg *config.Config) string {
	if verbose {
		return "debug"
	}
	return cfg.Logging.Level
}

// newTokenStore selects the token cache backend from token.cache.
func newTokenStore(ctx context.Context, cfg *config.Config) (central.TokenStore, error) {
	switch cfg.Token.Cache {
	case "", "file":
		return &central.FileTokenStore{
			Dir:        cfg.Token.Dir,
			CustomerID: cfg.CustomerID,
			ClientID:   cfg.ClientID,
		}, nil
	case "store":
		db, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		return db.TokenStore(cfg.CustomerID, cfg.ClientID)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown token cache backend %q", cfg.Token.Cache)
	}
}

// openStore opens the libsql store from the loaded configuration and runs
// migrations. Callers own the returned handle.
func openStore(ctx context.Context) (*store.Store, error) {
	cfg := appConfig
	if cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// parseOutputFormat resolves the global --output flag.
func parseOutputFormat() (output.Format, error) {
	return output.ParseFormat(outputFormat)
}

// printResponse prints the parsed response body as indented JSON.
func printResponse(resp *central.Response) error {
	if resp == nil {
		return nil
	}
	rendered, err := output.RenderJSON(resp.Body)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
