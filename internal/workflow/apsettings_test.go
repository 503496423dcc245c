package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/api"
	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/centraltest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAPSettingsCSV(t *testing.T) {
	path := writeFile(t, "aps.csv", `serial_number,hostname,ip_address,zonename,achannel,atxpower,gchannel,gtxpower,dot11a_radio_disable,dot11g_radio_disable,usb_port_disable
AAAAAAAAAA,AP1,0.0.0.0,,,,,,,,
BBBBBBBBBB,AP2,10.1.1.5,zone-2,,,,,,,
`)

	aps, err := LoadAPSettings(path)
	require.NoError(t, err)
	require.Len(t, aps, 2)
	require.Equal(t, "AAAAAAAAAA", aps[0].SerialNumber)
	require.Equal(t, "AP1", aps[0].Hostname)
	require.Equal(t, "zone-2", aps[1].Zonename)
}

func TestLoadAPSettingsCSVMissingColumns(t *testing.T) {
	path := writeFile(t, "aps.csv", `serial_number,hostname
AAAAAAAAAA,AP1
`)

	_, err := LoadAPSettings(path)
	require.ErrorContains(t, err, "missing columns")
	require.ErrorContains(t, err, "usb_port_disable")
}

func TestLoadAPSettingsYAML(t *testing.T) {
	path := writeFile(t, "aps.yaml", `
aps:
  - serial_number: AAAAAAAAAA
    hostname: AP-lobby
    ip_address: 0.0.0.0
`)

	aps, err := LoadAPSettings(path)
	require.NoError(t, err)
	require.Len(t, aps, 1)
	require.Equal(t, "AP-lobby", aps[0].Hostname)
}

func TestLoadAPSettingsUnsupportedExtension(t *testing.T) {
	_, err := LoadAPSettings("aps.json")
	require.ErrorContains(t, err, "unsupported device list format")
}

func newWorkflowClient(g *centraltest.Gateway) *central.Client {
	client := central.NewClient(g.URL(), "client-id", "client-secret")
	client.Token = &central.Token{
		AccessToken:  "valid-token",
		RefreshToken: "refresh-1",
		ExpiresIn:    7200,
		ObtainedAt:   time.Now().UTC(),
	}
	client.Retry = central.RetryPolicy{MaxRetries: 1, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond}
	return client
}

func TestAPSettingsWorkflowMergesAndUpdates(t *testing.T) {
	gateway := centraltest.New(t)

	gateway.Handle(http.MethodGet, "/configuration/v2/ap_settings/{serial}", func(w http.ResponseWriter, r *http.Request) {
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"hostname":"old-name","ip_address":"0.0.0.0","zonename":"zone-1","achannel":"","atxpower":"","gchannel":"","gtxpower":"","dot11a_radio_disable":"","dot11g_radio_disable":"","usb_port_disable":""}`))
	})

	updates := map[string]map[string]any{}
	gateway.Handle(http.MethodPost, "/configuration/v2/ap_settings/AAAAAAAAAA", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		updates["AAAAAAAAAA"] = body
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`"Success"`))
	})
	gateway.Handle(http.MethodPost, "/configuration/v2/ap_settings/BBBBBBBBBB", func(w http.ResponseWriter, r *http.Request) {
		centraltest.WriteQuota(w, 6, 4999)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid settings"}`))
	})

	wf := &APSettingsWorkflow{Configuration: &api.Configuration{Client: newWorkflowClient(gateway)}}
	result, err := wf.Run(context.Background(), []APSetting{
		{SerialNumber: "AAAAAAAAAA", Hostname: "AP-lobby"},
		{SerialNumber: "BBBBBBBBBB", Hostname: "AP-atrium"},
		{SerialNumber: ""},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Equal(t, []string{"AAAAAAAAAA"}, result.Succeeded)
	require.Len(t, result.Failed, 2)

	// Non-empty row fields override, everything else keeps the AP's value.
	require.Equal(t, "AP-lobby", updates["AAAAAAAAAA"]["hostname"])
	require.Equal(t, "zone-1", updates["AAAAAAAAAA"]["zonename"])
	require.Equal(t, "0.0.0.0", updates["AAAAAAAAAA"]["ip_address"])
}

func TestAPSettingsWorkflowRequiresInput(t *testing.T) {
	wf := &APSettingsWorkflow{Configuration: &api.Configuration{Client: newWorkflowClient(centraltest.New(t))}}
	_, err := wf.Run(context.Background(), nil)
	require.ErrorContains(t, err, "device list is empty")

	var unset *APSettingsWorkflow
	_, err = unset.Run(context.Background(), []APSetting{{SerialNumber: "A"}})
	require.ErrorContains(t, err, "not configured")
}
