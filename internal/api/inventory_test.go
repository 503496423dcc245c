package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestGetInventoryDefaultsSKUType(t *testing.T) {
	gateway := centraltest.New(t)

	var query map[string][]string
	gateway.Handle(http.MethodGet, "/platform/device_inventory/v1/devices", func(w http.ResponseWriter, r *http.Request) {
		if !centraltest.RequireBearer(w, r, "valid-token") {
			return
		}
		query = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"devices":[],"total":0}`))
	})

	inv := &Inventory{Client: newTestClient(gateway)}
	resp, err := inv.GetInventory(context.Background(), "", 20, 50)
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Equal(t, []string{"all"}, query["sku_type"])
	require.Equal(t, []string{"20"}, query["offset"])
	require.Equal(t, []string{"50"}, query["limit"])
}

func TestArchiveDevicesPostsSerials(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPost, "/platform/device_inventory/v1/devices/archive", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"succeeded_devices":["CN12345678"]}`))
	})

	inv := &Inventory{Client: newTestClient(gateway)}
	resp, err := inv.ArchiveDevices(context.Background(), []string{"CN12345678"})
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Equal(t, map[string]any{"serials": []any{"CN12345678"}}, body)
}

func TestArchiveDevicesRejectsOversizedBatch(t *testing.T) {
	gateway := centraltest.New(t)
	inv := &Inventory{Client: newTestClient(gateway)}

	serials := make([]string, maxInventoryDevices+1)
	for i := range serials {
		serials[i] = "CN0"
	}
	_, err := inv.ArchiveDevices(context.Background(), serials)
	require.ErrorContains(t, err, "at most 100 devices")

	_, err = inv.UnarchiveDevices(context.Background(), nil)
	require.ErrorContains(t, err, "at least one device serial")
}

func TestAddDevicesSendsSerialAndMac(t *testing.T) {
	gateway := centraltest.New(t)

	var body []map[string]any
	gateway.Handle(http.MethodPost, "/platform/device_inventory/v1/devices", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	inv := &Inventory{Client: newTestClient(gateway)}
	_, err := inv.AddDevices(context.Background(), []NewDevice{{Serial: "CN12345678", Mac: "aa:bb:cc:dd:ee:ff"}})
	require.NoError(t, err)
	require.Len(t, body, 1)
	require.Equal(t, "CN12345678", body[0]["serial"])
	require.Equal(t, "aa:bb:cc:dd:ee:ff", body[0]["mac"])
}
