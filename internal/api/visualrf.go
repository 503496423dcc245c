package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	clientLocationPath = "/visualrf_api/v1/client_location"
	rogueLocationPath  = "/visualrf_api/v1/rogue_location"
	campusPath         = "/visualrf_api/v1/campus"
	buildingPath       = "/visualrf_api/v1/building"
	floorPath          = "/visualrf_api/v1/floor"
	apLocationPath     = "/visualrf_api/v1/access_point_location"
)

// VisualRF wraps the floorplan and location endpoints. Location coordinates
// are reported in the requested units; an empty units means feet.
type VisualRF struct {
	Client *central.Client
}

// GetClientLocation returns the floor location of one client by MAC address.
// Only clients seen on a floorplan within the last three hours are located.
func (v *VisualRF) GetClientLocation(ctx context.Context, macAddr, units string, offset, limit int) (*central.Response, error) {
	if macAddr == "" {
		return nil, errors.New("client mac address is required")
	}
	return v.get(ctx, clientLocationPath+"/"+url.PathEscape(macAddr), unitsOrFeet(units), offset, limit)
}

// GetFloorClients lists the located clients on one floor.
func (v *VisualRF) GetFloorClients(ctx context.Context, floorID, units string, offset, limit int) (*central.Response, error) {
	if floorID == "" {
		return nil, errors.New("floor id is required")
	}
	return v.get(ctx, floorPath+"/"+url.PathEscape(floorID)+"/client_location", unitsOrFeet(units), offset, limit)
}

// GetRogueAPLocation returns the floor location of one rogue AP by MAC
// address.
func (v *VisualRF) GetRogueAPLocation(ctx context.Context, macAddr, units string, offset, limit int) (*central.Response, error) {
	if macAddr == "" {
		return nil, errors.New("rogue ap mac address is required")
	}
	return v.get(ctx, rogueLocationPath+"/"+url.PathEscape(macAddr), unitsOrFeet(units), offset, limit)
}

// GetFloorRogueAPs lists the located rogue APs on one floor.
func (v *VisualRF) GetFloorRogueAPs(ctx context.Context, floorID, units string, offset, limit int) (*central.Response, error) {
	if floorID == "" {
		return nil, errors.New("floor id is required")
	}
	return v.get(ctx, floorPath+"/"+url.PathEscape(floorID), unitsOrFeet(units), offset, limit)
}

// GetCampusList lists the campuses of the customer.
func (v *VisualRF) GetCampusList(ctx context.Context, offset, limit int) (*central.Response, error) {
	return v.get(ctx, campusPath, "", offset, limit)
}

// GetCampusBuildings lists the buildings of one campus.
func (v *VisualRF) GetCampusBuildings(ctx context.Context, campusID string, offset, limit int) (*central.Response, error) {
	if campusID == "" {
		return nil, errors.New("campus id is required")
	}
	return v.get(ctx, campusPath+"/"+url.PathEscape(campusID), "", offset, limit)
}

// GetBuildingFloors lists the floors of one building.
func (v *VisualRF) GetBuildingFloors(ctx context.Context, buildingID, units string, offset, limit int) (*central.Response, error) {
	if buildingID == "" {
		return nil, errors.New("building id is required")
	}
	return v.get(ctx, buildingPath+"/"+url.PathEscape(buildingID), unitsOrFeet(units), offset, limit)
}

// GetFloorInfo returns the floorplan metadata of one floor.
func (v *VisualRF) GetFloorInfo(ctx context.Context, floorID, units string, offset, limit int) (*central.Response, error) {
	if floorID == "" {
		return nil, errors.New("floor id is required")
	}
	return v.get(ctx, floorPath+"/"+url.PathEscape(floorID), unitsOrFeet(units), offset, limit)
}

// GetFloorImage returns the floor's background image as base64.
func (v *VisualRF) GetFloorImage(ctx context.Context, floorID string, offset, limit int) (*central.Response, error) {
	if floorID == "" {
		return nil, errors.New("floor id is required")
	}
	return v.get(ctx, floorPath+"/"+url.PathEscape(floorID)+"/image", "", offset, limit)
}

// GetFloorAPs lists the placed access points on one floor.
func (v *VisualRF) GetFloorAPs(ctx context.Context, floorID, units string, offset, limit int) (*central.Response, error) {
	if floorID == "" {
		return nil, errors.New("floor id is required")
	}
	return v.get(ctx, floorPath+"/"+url.PathEscape(floorID)+"/access_point_location", unitsOrFeet(units), offset, limit)
}

// GetAPLocation returns the floor location of one placed access point.
func (v *VisualRF) GetAPLocation(ctx context.Context, apID, units string, offset, limit int) (*central.Response, error) {
	if apID == "" {
		return nil, errors.New("ap id is required")
	}
	return v.get(ctx, apLocationPath+"/"+url.PathEscape(apID), unitsOrFeet(units), offset, limit)
}

// unitsOrFeet applies the gateway's default measurement unit.
func unitsOrFeet(units string) string {
	if units == "" {
		return "FEET"
	}
	return units
}

func (v *VisualRF) get(ctx context.Context, path, units string, offset, limit int) (*central.Response, error) {
	if v == nil || v.Client == nil {
		return nil, errors.New("visualrf service is not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	params := pageParams(offset, limit)
	setIfPresent(params, "units", units)

	return v.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   path,
		Params: params,
	})
}
