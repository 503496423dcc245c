package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const apSettingsPath = "/configuration/v2/ap_settings"

// Configuration wraps the device configuration endpoints.
type Configuration struct {
	Client *central.Client
}

// GetAPSettings returns the current settings of one access point.
func (c *Configuration) GetAPSettings(ctx context.Context, serial string) (*central.Response, error) {
	if c == nil || c.Client == nil {
		return nil, errors.New("configuration service is not configured")
	}
	if serial == "" {
		return nil, errors.New("ap serial number is required")
	}
	return c.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   apSettingsPath + "/" + url.PathEscape(serial),
	})
}

// UpdateAPSettings replaces the settings of one access point. The settings
// document must carry the full field set, not a partial patch.
func (c *Configuration) UpdateAPSettings(ctx context.Context, serial string, settings map[string]any) (*central.Response, error) {
	if c == nil || c.Client == nil {
		return nil, errors.New("configuration service is not configured")
	}
	if serial == "" {
		return nil, errors.New("ap serial number is required")
	}
	if len(settings) == 0 {
		return nil, errors.New("ap settings document is required")
	}
	return c.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   apSettingsPath + "/" + url.PathEscape(serial),
		Body:   settings,
	})
}
