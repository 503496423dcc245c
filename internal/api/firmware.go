package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	firmwareSwarmsPath   = "/firmware/v1/swarms"
	firmwareVersionsPath = "/firmware/v1/versions"
	firmwareStatusPath   = "/firmware/v1/status"
	firmwareUpgradePath  = "/firmware/v1/upgrade"
	firmwareCancelPath   = "/firmware/v1/upgrade/cancel"
)

// Firmware wraps the firmware management endpoints.
type Firmware struct {
	Client *central.Client
}

// UpgradeOptions selects the upgrade target. Exactly one of Serial, SwarmID
// or Group (with DeviceType) should be set.
type UpgradeOptions struct {
	FirmwareVersion string
	Reboot          bool
	DeviceType      string
	Model           string
	Group           string
	Serial          string
	SwarmID         string
	ScheduleAt      int64
}

// ListSwarms lists firmware details of all swarms, optionally per group.
func (f *Firmware) ListSwarms(ctx context.Context, group string, offset, limit int) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}

	params := pageParams(offset, limit)
	if group != "" {
		params.Set("group", group)
	}

	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   firmwareSwarmsPath,
		Params: params,
	})
}

// GetSwarm returns firmware details for one swarm.
func (f *Firmware) GetSwarm(ctx context.Context, swarmID string) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if swarmID == "" {
		return nil, errors.New("swarm id is required")
	}
	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   firmwareSwarmsPath + "/" + url.PathEscape(swarmID),
	})
}

// ListSupportedVersions lists firmware versions for a device type or swarm.
func (f *Firmware) ListSupportedVersions(ctx context.Context, deviceType, swarmID string) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if deviceType == "" && swarmID == "" {
		return nil, errors.New("device type or swarm id is required")
	}

	params := url.Values{}
	if deviceType != "" {
		params.Set("device_type", deviceType)
	}
	if swarmID != "" {
		params.Set("swarm_id", swarmID)
	}

	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   firmwareVersionsPath,
		Params: params,
	})
}

// CheckVersionSupport reports whether a firmware version is supported for a
// device type.
func (f *Firmware) CheckVersionSupport(ctx context.Context, firmwareVersion, deviceType string) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if firmwareVersion == "" || deviceType == "" {
		return nil, errors.New("firmware version and device type are required")
	}
	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   firmwareVersionsPath + "/" + url.PathEscape(firmwareVersion),
		Params: url.Values{"device_type": []string{deviceType}},
	})
}

// CheckStatus returns the firmware upgrade status of a device or swarm.
func (f *Firmware) CheckStatus(ctx context.Context, serial, swarmID string) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if serial == "" && swarmID == "" {
		return nil, errors.New("serial or swarm id is required")
	}

	params := url.Values{}
	if swarmID != "" {
		params.Set("swarm_id", swarmID)
	} else {
		params.Set("serial", serial)
	}

	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   firmwareStatusPath,
		Params: params,
	})
}

// Upgrade initiates a firmware upgrade for the selected target. An empty
// FirmwareVersion upgrades to the recommended release.
func (f *Firmware) Upgrade(ctx context.Context, opts UpgradeOptions) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if opts.Serial == "" && opts.SwarmID == "" && opts.Group == "" {
		return nil, errors.New("serial, swarm id or group is required")
	}

	body := map[string]any{
		"firmware_version": opts.FirmwareVersion,
		"reboot":           opts.Reboot,
	}
	if opts.Model != "" {
		body["model"] = opts.Model
	}
	if opts.Group != "" {
		body["group"] = opts.Group
	}
	if opts.Serial != "" {
		body["serial"] = opts.Serial
	}
	if opts.DeviceType != "" {
		body["device_type"] = opts.DeviceType
	}
	if opts.SwarmID != "" {
		body["swarm_id"] = opts.SwarmID
	}
	if opts.ScheduleAt > 0 {
		body["firmware_scheduled_at"] = opts.ScheduleAt
	}

	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   firmwareUpgradePath,
		Body:   body,
	})
}

// CancelUpgrade cancels a scheduled upgrade for a device, swarm or group.
func (f *Firmware) CancelUpgrade(ctx context.Context, serial, swarmID, deviceType, group string) (*central.Response, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("firmware service is not configured")
	}
	if serial == "" && swarmID == "" && group == "" {
		return nil, errors.New("serial, swarm id or group is required")
	}

	body := map[string]any{}
	if serial != "" {
		body["serial"] = serial
	}
	if swarmID != "" {
		body["swarm_id"] = swarmID
	}
	if deviceType != "" {
		body["device_type"] = deviceType
	}
	if group != "" {
		body["group"] = group
	}

	return f.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   firmwareCancelPath,
		Body:   body,
	})
}
