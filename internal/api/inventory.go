package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	inventoryDevicesPath   = "/platform/device_inventory/v1/devices"
	inventoryArchivePath   = "/platform/device_inventory/v1/devices/archive"
	inventoryUnarchivePath = "/platform/device_inventory/v1/devices/unarchive"
)

// maxInventoryDevices is the largest device batch the gateway accepts per
// archive/unarchive/add call.
const maxInventoryDevices = 100

// Inventory wraps the device inventory endpoints.
type Inventory struct {
	Client *central.Client
}

// NewDevice describes a device added to the inventory.
type NewDevice struct {
	Serial string `json:"serial"`
	Mac    string `json:"mac"`
}

// GetInventory lists devices of the given SKU type ("all", "iap", "switch",
// "controller", "gateway", ...). A zero limit fetches everything.
func (i *Inventory) GetInventory(ctx context.Context, skuType string, offset, limit int) (*central.Response, error) {
	if i == nil || i.Client == nil {
		return nil, errors.New("inventory service is not configured")
	}
	if skuType == "" {
		skuType = "all"
	}

	params := pageParams(offset, limit)
	params.Set("sku_type", skuType)

	return i.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   inventoryDevicesPath,
		Params: params,
	})
}

// ArchiveDevices archives up to 100 devices by serial number.
func (i *Inventory) ArchiveDevices(ctx context.Context, serials []string) (*central.Response, error) {
	return i.batchSerials(ctx, inventoryArchivePath, serials)
}

// UnarchiveDevices unarchives up to 100 devices by serial number.
func (i *Inventory) UnarchiveDevices(ctx context.Context, serials []string) (*central.Response, error) {
	return i.batchSerials(ctx, inventoryUnarchivePath, serials)
}

// AddDevices registers new devices by serial and MAC address.
func (i *Inventory) AddDevices(ctx context.Context, devices []NewDevice) (*central.Response, error) {
	if i == nil || i.Client == nil {
		return nil, errors.New("inventory service is not configured")
	}
	if len(devices) == 0 {
		return nil, errors.New("at least one device is required")
	}
	if len(devices) > maxInventoryDevices {
		return nil, fmt.Errorf("at most %d devices per call, got %d", maxInventoryDevices, len(devices))
	}

	return i.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   inventoryDevicesPath,
		Body:   devices,
	})
}

func (i *Inventory) batchSerials(ctx context.Context, path string, serials []string) (*central.Response, error) {
	if i == nil || i.Client == nil {
		return nil, errors.New("inventory service is not configured")
	}
	if len(serials) == 0 {
		return nil, errors.New("at least one device serial is required")
	}
	if len(serials) > maxInventoryDevices {
		return nil, fmt.Errorf("at most %d devices per call, got %d", maxInventoryDevices, len(serials))
	}

	return i.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   map[string]any{"serials": serials},
	})
}
