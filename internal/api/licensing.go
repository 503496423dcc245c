package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	licensingKeysPath        = "/platform/licensing/v1/subscriptions"
	licensingEnabledSvcPath  = "/platform/licensing/v1/services/enabled"
	licensingAssignPath      = "/platform/licensing/v1/subscriptions/assign"
	licensingUnassignPath    = "/platform/licensing/v1/subscriptions/unassign"
	licensingStatsPath       = "/platform/licensing/v1/subscriptions/stats"
	licensingSvcConfigPath   = "/platform/licensing/v1/services/config"
	licensingAllDevicesPath  = "/platform/licensing/v1/subscriptions/devices/all"
	licensingAutoLicensePath = "/platform/licensing/v1/customer/settings/autolicense"
)

// Licensing wraps the subscription and auto-license endpoints.
type Licensing struct {
	Client *central.Client
}

// GetSubscriptionKeys lists subscription keys, optionally filtered by
// license type.
func (l *Licensing) GetSubscriptionKeys(ctx context.Context, licenseType string, offset, limit int) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}

	params := pageParams(offset, limit)
	if licenseType != "" {
		params.Set("license_type", licenseType)
	}

	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   licensingKeysPath,
		Params: params,
	})
}

// GetEnabledServices lists services enabled for the customer.
func (l *Licensing) GetEnabledServices(ctx context.Context) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	return l.Client.Execute(ctx, &central.Request{Method: http.MethodGet, Path: licensingEnabledSvcPath})
}

// AssignSubscriptions assigns the given services to devices by serial.
func (l *Licensing) AssignSubscriptions(ctx context.Context, serials, services []string) (*central.Response, error) {
	return l.subscriptionChange(ctx, licensingAssignPath, serials, services)
}

// UnassignSubscriptions removes the given services from devices by serial.
func (l *Licensing) UnassignSubscriptions(ctx context.Context, serials, services []string) (*central.Response, error) {
	return l.subscriptionChange(ctx, licensingUnassignPath, serials, services)
}

// GetSubscriptionStats returns subscription usage statistics.
func (l *Licensing) GetSubscriptionStats(ctx context.Context, licenseType, service string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	if licenseType == "" {
		licenseType = "all"
	}

	params := url.Values{}
	params.Set("license_type", licenseType)
	if service != "" {
		params.Set("service", service)
	}

	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   licensingStatsPath,
		Params: params,
	})
}

// GetServicesConfig returns license configuration per service category.
func (l *Licensing) GetServicesConfig(ctx context.Context, serviceCategory, deviceType string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}

	params := url.Values{}
	if serviceCategory != "" {
		params.Set("service_category", serviceCategory)
	}
	if deviceType != "" {
		params.Set("device_type", deviceType)
	}

	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   licensingSvcConfigPath,
		Params: params,
	})
}

// AssignSubscriptionsAll enables the given services for all devices.
func (l *Licensing) AssignSubscriptionsAll(ctx context.Context, services []string) (*central.Response, error) {
	return l.allDevicesChange(ctx, http.MethodPost, services)
}

// UnassignSubscriptionsAll disables the given services for all devices.
func (l *Licensing) UnassignSubscriptionsAll(ctx context.Context, services []string) (*central.Response, error) {
	return l.allDevicesChange(ctx, http.MethodDelete, services)
}

// GetAutoLicenseServices lists services with auto-licensing enabled.
func (l *Licensing) GetAutoLicenseServices(ctx context.Context) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	return l.Client.Execute(ctx, &central.Request{Method: http.MethodGet, Path: licensingAutoLicensePath})
}

// SetAutoLicenseServices enables auto-licensing for the given services.
func (l *Licensing) SetAutoLicenseServices(ctx context.Context, services []string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	if len(services) == 0 {
		return nil, errors.New("at least one service is required")
	}
	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   licensingAutoLicensePath,
		Body:   map[string]any{"services": services},
	})
}

// DisableAutoLicenseServices disables auto-licensing for the given services.
func (l *Licensing) DisableAutoLicenseServices(ctx context.Context, services []string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	if len(services) == 0 {
		return nil, errors.New("at least one service is required")
	}
	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodDelete,
		Path:   licensingAutoLicensePath,
		Body:   map[string]any{"services": services},
	})
}

func (l *Licensing) subscriptionChange(ctx context.Context, path string, serials, services []string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	if len(serials) == 0 {
		return nil, errors.New("at least one device serial is required")
	}
	if len(services) == 0 {
		return nil, errors.New("at least one service is required")
	}

	return l.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   path,
		Body: map[string]any{
			"serials":  serials,
			"services": services,
		},
	})
}

func (l *Licensing) allDevicesChange(ctx context.Context, method string, services []string) (*central.Response, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("licensing service is not configured")
	}
	if len(services) == 0 {
		return nil, errors.New("at least one service is required")
	}

	return l.Client.Execute(ctx, &central.Request{
		Method: method,
		Path:   licensingAllDevicesPath,
		Body:   map[string]any{"services": services},
	})
}
