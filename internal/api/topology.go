package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	topologyPath          = "/topology_external_api"
	topologyDevicesPath   = "/topology_external_api/devices"
	topologyEdgesPath     = "/topology_external_api/v2/edges"
	topologyUplinksPath   = "/topology_external_api/uplinks"
	topologyNeighborsPath = "/topology_external_api/apNeighbors"
)

// Topology wraps the site topology endpoints.
type Topology struct {
	Client *central.Client
}

// GetSiteTopology returns the full topology of a site.
func (t *Topology) GetSiteTopology(ctx context.Context, siteID int) (*central.Response, error) {
	if t == nil || t.Client == nil {
		return nil, errors.New("topology service is not configured")
	}
	if siteID <= 0 {
		return nil, errors.New("site id is required")
	}
	return t.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   topologyPath + "/" + strconv.Itoa(siteID),
	})
}

// GetDeviceDetails returns topology details for one device.
func (t *Topology) GetDeviceDetails(ctx context.Context, serial string) (*central.Response, error) {
	if t == nil || t.Client == nil {
		return nil, errors.New("topology service is not configured")
	}
	if serial == "" {
		return nil, errors.New("device serial is required")
	}
	return t.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   topologyDevicesPath + "/" + url.PathEscape(serial),
	})
}

// GetEdgeDetails returns the edge between two devices.
func (t *Topology) GetEdgeDetails(ctx context.Context, sourceSerial, destSerial string) (*central.Response, error) {
	if t == nil || t.Client == nil {
		return nil, errors.New("topology service is not configured")
	}
	if sourceSerial == "" || destSerial == "" {
		return nil, errors.New("source and destination serials are required")
	}
	return t.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   topologyEdgesPath + "/" + url.PathEscape(sourceSerial) + "/" + url.PathEscape(destSerial),
	})
}

// GetUplinkDetails returns one uplink of a device.
func (t *Topology) GetUplinkDetails(ctx context.Context, sourceSerial, uplinkID string) (*central.Response, error) {
	if t == nil || t.Client == nil {
		return nil, errors.New("topology service is not configured")
	}
	if sourceSerial == "" || uplinkID == "" {
		return nil, errors.New("source serial and uplink id are required")
	}
	return t.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   topologyUplinksPath + "/" + url.PathEscape(sourceSerial) + "/" + url.PathEscape(uplinkID),
	})
}

// GetAPNeighbors returns LLDP neighbors of an access point.
func (t *Topology) GetAPNeighbors(ctx context.Context, serial string) (*central.Response, error) {
	if t == nil || t.Client == nil {
		return nil, errors.New("topology service is not configured")
	}
	if serial == "" {
		return nil, errors.New("device serial is required")
	}
	return t.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   topologyNeighborsPath + "/" + url.PathEscape(serial),
	})
}
