package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestCreateSiteWithAddress(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPost, "/central/v2/sites", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"site_id":42}`))
	})

	mon := &Monitoring{Client: newTestClient(gateway)}
	resp, err := mon.CreateSite(context.Background(), "HQ", &SiteAddress{
		Address: "3333 Scott Blvd",
		City:    "Santa Clara",
		State:   "CA",
		Country: "United States",
		Zipcode: "95054",
	}, nil)
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Equal(t, "HQ", body["site_name"])
	require.Contains(t, body, "site_address")
	require.NotContains(t, body, "geolocation")
}

func TestCreateSiteRejectsAddressAndGeolocation(t *testing.T) {
	gateway := centraltest.New(t)
	mon := &Monitoring{Client: newTestClient(gateway)}

	_, err := mon.CreateSite(context.Background(), "HQ", &SiteAddress{Address: "x"}, &Geolocation{Latitude: 1, Longitude: 2})
	require.ErrorContains(t, err, "mutually exclusive")
}

func TestUpdateSitePatchesByID(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPatch, "/central/v2/sites/42", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"site_id":42}`))
	})

	mon := &Monitoring{Client: newTestClient(gateway)}
	_, err := mon.UpdateSite(context.Background(), 42, "HQ West", nil, &Geolocation{Latitude: 37.4, Longitude: -121.9})
	require.NoError(t, err)
	require.Equal(t, "HQ West", body["site_name"])
	require.Contains(t, body, "geolocation")
}

func TestAssociateDevicesPostsAssociation(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPost, "/central/v2/sites/associations", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"success":["CN12345678"]}`))
	})

	mon := &Monitoring{Client: newTestClient(gateway)}
	_, err := mon.AssociateDevices(context.Background(), 42, "IAP", []string{"CN12345678"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"site_id":     float64(42),
		"device_type": "IAP",
		"device_ids":  []any{"CN12345678"},
	}, body)
}

func TestFindSiteIDWalksPages(t *testing.T) {
	gateway := centraltest.New(t)

	gateway.Handle(http.MethodGet, "/central/v2/sites", func(w http.ResponseWriter, r *http.Request) {
		centraltest.WriteQuota(w, 6, 4999)
		if r.URL.Query().Get("offset") == "0" {
			sites := make([]string, 0, 100)
			for i := 0; i < 100; i++ {
				sites = append(sites, fmt.Sprintf(`{"site_id":%d,"site_name":"branch-%d"}`, i+1, i+1))
			}
			fmt.Fprintf(w, `{"sites":[%s]}`, strings.Join(sites, ","))
			return
		}
		fmt.Fprint(w, `{"sites":[{"site_id":101,"site_name":"HQ"}]}`)
	})

	mon := &Monitoring{Client: newTestClient(gateway)}
	id, err := mon.FindSiteID(context.Background(), "HQ")
	require.NoError(t, err)
	require.Equal(t, 101, id)
}

func TestFindSiteIDReturnsZeroWhenMissing(t *testing.T) {
	gateway := centraltest.New(t)
	gateway.Handle(http.MethodGet, "/central/v2/sites", func(w http.ResponseWriter, r *http.Request) {
		centraltest.WriteQuota(w, 6, 4999)
		fmt.Fprint(w, `{"sites":[]}`)
	})

	mon := &Monitoring{Client: newTestClient(gateway)}
	id, err := mon.FindSiteID(context.Background(), "nowhere")
	require.NoError(t, err)
	require.Zero(t, id)
}
