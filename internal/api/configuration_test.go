package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestGetAPSettingsBuildsPath(t *testing.T) {
	gateway := centraltest.New(t)

	var hit bool
	gateway.Handle(http.MethodGet, "/configuration/v2/ap_settings/CN12345678", func(w http.ResponseWriter, r *http.Request) {
		if !centraltest.RequireBearer(w, r, "valid-token") {
			return
		}
		hit = true
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"hostname":"AP1","ip_address":"0.0.0.0"}`))
	})

	conf := &Configuration{Client: newTestClient(gateway)}
	resp, err := conf.GetAPSettings(context.Background(), "CN12345678")
	require.NoError(t, err)
	require.True(t, hit)
	require.True(t, resp.OK())

	_, err = conf.GetAPSettings(context.Background(), "")
	require.ErrorContains(t, err, "serial number")
}

func TestUpdateAPSettingsPostsDocument(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPost, "/configuration/v2/ap_settings/CN12345678", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`"Success"`))
	})

	conf := &Configuration{Client: newTestClient(gateway)}
	_, err := conf.UpdateAPSettings(context.Background(), "CN12345678", map[string]any{
		"hostname":   "AP-lobby",
		"ip_address": "0.0.0.0",
	})
	require.NoError(t, err)
	require.Equal(t, "AP-lobby", body["hostname"])

	_, err = conf.UpdateAPSettings(context.Background(), "CN12345678", nil)
	require.ErrorContains(t, err, "settings document")
}
