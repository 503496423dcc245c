package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	sitesPath          = "/central/v2/sites"
	sitesAssociatePath = "/central/v2/sites/associations"
)

// Monitoring wraps the site monitoring endpoints.
type Monitoring struct {
	Client *central.Client
}

// SiteAddress is the postal address of a site. Mutually exclusive with
// Geolocation when creating or updating a site.
type SiteAddress struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
}

// Geolocation pins a site to map coordinates.
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GetSites lists sites with pagination, sorted by the gateway default.
func (m *Monitoring) GetSites(ctx context.Context, calculateTotal bool, offset, limit int) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("monitoring service is not configured")
	}

	params := pageParams(offset, limit)
	if calculateTotal {
		params.Set("calculate_total", "true")
	}

	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   sitesPath,
		Params: params,
	})
}

// CreateSite creates a site addressed either by postal address or by
// geolocation.
func (m *Monitoring) CreateSite(ctx context.Context, name string, address *SiteAddress, location *Geolocation) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("monitoring service is not configured")
	}
	body, err := sitePayload(name, address, location)
	if err != nil {
		return nil, err
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   sitesPath,
		Body:   body,
	})
}

// UpdateSite replaces the name and address of an existing site.
func (m *Monitoring) UpdateSite(ctx context.Context, siteID int, name string, address *SiteAddress, location *Geolocation) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("monitoring service is not configured")
	}
	if siteID <= 0 {
		return nil, errors.New("site id is required")
	}
	body, err := sitePayload(name, address, location)
	if err != nil {
		return nil, err
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodPatch,
		Path:   sitesPath + "/" + strconv.Itoa(siteID),
		Body:   body,
	})
}

// DeleteSite removes a site.
func (m *Monitoring) DeleteSite(ctx context.Context, siteID int) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("monitoring service is not configured")
	}
	if siteID <= 0 {
		return nil, errors.New("site id is required")
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodDelete,
		Path:   sitesPath + "/" + strconv.Itoa(siteID),
	})
}

// AssociateDevices attaches devices of one type to a site by serial.
// Device type is one of "IAP", "ArubaSwitch", "CX", "MobilityController".
func (m *Monitoring) AssociateDevices(ctx context.Context, siteID int, deviceType string, serials []string) (*central.Response, error) {
	return m.association(ctx, http.MethodPost, siteID, deviceType, serials)
}

// UnassociateDevices detaches devices of one type from a site by serial.
func (m *Monitoring) UnassociateDevices(ctx context.Context, siteID int, deviceType string, serials []string) (*central.Response, error) {
	return m.association(ctx, http.MethodDelete, siteID, deviceType, serials)
}

// FindSiteID walks the site list and returns the id of the named site,
// or 0 when no site matches.
func (m *Monitoring) FindSiteID(ctx context.Context, siteName string) (int, error) {
	if m == nil || m.Client == nil {
		return 0, errors.New("monitoring service is not configured")
	}
	if siteName == "" {
		return 0, errors.New("site name is required")
	}

	offset := 0
	for {
		resp, err := m.GetSites(ctx, false, offset, 100)
		if err != nil {
			return 0, err
		}

		var page struct {
			Sites []struct {
				SiteID   int    `json:"site_id"`
				SiteName string `json:"site_name"`
			} `json:"sites"`
		}
		if err := resp.Decode(&page); err != nil {
			return 0, fmt.Errorf("decode sites page: %w", err)
		}
		if len(page.Sites) == 0 {
			return 0, nil
		}
		for _, site := range page.Sites {
			if site.SiteName == siteName {
				return site.SiteID, nil
			}
		}
		offset += len(page.Sites)
	}
}

func (m *Monitoring) association(ctx context.Context, method string, siteID int, deviceType string, serials []string) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("monitoring service is not configured")
	}
	if siteID <= 0 {
		return nil, errors.New("site id is required")
	}
	if deviceType == "" {
		return nil, errors.New("device type is required")
	}
	if len(serials) == 0 {
		return nil, errors.New("at least one device serial is required")
	}

	return m.Client.Execute(ctx, &central.Request{
		Method: method,
		Path:   sitesAssociatePath,
		Body: map[string]any{
			"site_id":     siteID,
			"device_type": deviceType,
			"device_ids":  serials,
		},
	})
}

func sitePayload(name string, address *SiteAddress, location *Geolocation) (map[string]any, error) {
	if name == "" {
		return nil, errors.New("site name is required")
	}
	if address != nil && location != nil {
		return nil, errors.New("site address and geolocation are mutually exclusive")
	}

	body := map[string]any{"site_name": name}
	if address != nil {
		body["site_address"] = address
	} else if location != nil {
		body["geolocation"] = location
	}
	return body, nil
}
