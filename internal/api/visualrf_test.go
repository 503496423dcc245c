package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestGetClientLocationBuildsPath(t *testing.T) {
	gateway := centraltest.New(t)

	var query map[string][]string
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/client_location/{mac}", func(w http.ResponseWriter, r *http.Request) {
		if !centraltest.RequireBearer(w, r, "valid-token") {
			return
		}
		query = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"location":{"x":10.5,"y":4.2}}`))
	})

	rf := &VisualRF{Client: newTestClient(gateway)}
	_, err := rf.GetClientLocation(context.Background(), "aa:bb:cc:dd:ee:ff", "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"FEET"}, query["units"])
	require.Equal(t, []string{"100"}, query["limit"])

	_, err = rf.GetClientLocation(context.Background(), "", "", 0, 0)
	require.ErrorContains(t, err, "mac address is required")
}

func TestGetFloorClientsQueriesFloor(t *testing.T) {
	gateway := centraltest.New(t)

	var query map[string][]string
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/floor/floor-1/client_location", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"clients":[]}`))
	})

	rf := &VisualRF{Client: newTestClient(gateway)}
	_, err := rf.GetFloorClients(context.Background(), "floor-1", "METERS", 0, 50)
	require.NoError(t, err)
	require.Equal(t, []string{"METERS"}, query["units"])
	require.Equal(t, []string{"50"}, query["limit"])
}

func TestGetCampusHierarchy(t *testing.T) {
	gateway := centraltest.New(t)

	var campusQuery map[string][]string
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/campus", func(w http.ResponseWriter, r *http.Request) {
		campusQuery = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"campus":[],"campus_count":0}`))
	})
	var buildingsHit, floorsHit bool
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/campus/campus-1", func(w http.ResponseWriter, r *http.Request) {
		buildingsHit = true
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"buildings":[]}`))
	})
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/building/building-1", func(w http.ResponseWriter, r *http.Request) {
		floorsHit = true
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"floors":[]}`))
	})

	rf := &VisualRF{Client: newTestClient(gateway)}

	_, err := rf.GetCampusList(context.Background(), 0, 0)
	require.NoError(t, err)
	require.NotContains(t, campusQuery, "units")

	_, err = rf.GetCampusBuildings(context.Background(), "campus-1", 0, 0)
	require.NoError(t, err)
	require.True(t, buildingsHit)

	_, err = rf.GetBuildingFloors(context.Background(), "building-1", "", 0, 0)
	require.NoError(t, err)
	require.True(t, floorsHit)
}

func TestGetFloorImageOmitsUnits(t *testing.T) {
	gateway := centraltest.New(t)

	var query map[string][]string
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/floor/floor-1/image", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"image":"aGVsbG8="}`))
	})

	rf := &VisualRF{Client: newTestClient(gateway)}
	_, err := rf.GetFloorImage(context.Background(), "floor-1", 0, 0)
	require.NoError(t, err)
	require.NotContains(t, query, "units")
}

func TestGetFloorAPsAndAPLocation(t *testing.T) {
	gateway := centraltest.New(t)

	var apsQuery map[string][]string
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/floor/floor-1/access_point_location", func(w http.ResponseWriter, r *http.Request) {
		apsQuery = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"access_points":[]}`))
	})
	var locationHit bool
	gateway.Handle(http.MethodGet, "/visualrf_api/v1/access_point_location/ap-1", func(w http.ResponseWriter, r *http.Request) {
		locationHit = true
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"location":{"x":1,"y":2}}`))
	})

	rf := &VisualRF{Client: newTestClient(gateway)}

	_, err := rf.GetFloorAPs(context.Background(), "floor-1", "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"FEET"}, apsQuery["units"])

	_, err = rf.GetAPLocation(context.Background(), "ap-1", "", 0, 0)
	require.NoError(t, err)
	require.True(t, locationHit)
}
