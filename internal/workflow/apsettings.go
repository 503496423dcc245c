// Package workflow implements multi-call orchestrations on top of the
// endpoint services, such as bulk AP settings updates driven by a device
// list file.
package workflow

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gocentral/gocentral/internal/api"
)

// apSettingsFields are the columns every device list must carry. Empty
// values leave the AP's existing setting untouched.
var apSettingsFields = []string{
	"serial_number",
	"hostname",
	"ip_address",
	"zonename",
	"achannel",
	"atxpower",
	"gchannel",
	"gtxpower",
	"dot11a_radio_disable",
	"dot11g_radio_disable",
	"usb_port_disable",
}

// APSetting is one device row from the list file.
type APSetting struct {
	SerialNumber       string `yaml:"serial_number"`
	Hostname           string `yaml:"hostname"`
	IPAddress          string `yaml:"ip_address"`
	Zonename           string `yaml:"zonename"`
	AChannel           string `yaml:"achannel"`
	ATxPower           string `yaml:"atxpower"`
	GChannel           string `yaml:"gchannel"`
	GTxPower           string `yaml:"gtxpower"`
	Dot11aRadioDisable string `yaml:"dot11a_radio_disable"`
	Dot11gRadioDisable string `yaml:"dot11g_radio_disable"`
	USBPortDisable     string `yaml:"usb_port_disable"`
}

// overrides returns the non-empty settings this row wants to change,
// keyed by the gateway field names.
func (s APSetting) overrides() map[string]string {
	values := map[string]string{
		"hostname":             s.Hostname,
		"ip_address":           s.IPAddress,
		"zonename":             s.Zonename,
		"achannel":             s.AChannel,
		"atxpower":             s.ATxPower,
		"gchannel":             s.GChannel,
		"gtxpower":             s.GTxPower,
		"dot11a_radio_disable": s.Dot11aRadioDisable,
		"dot11g_radio_disable": s.Dot11gRadioDisable,
		"usb_port_disable":     s.USBPortDisable,
	}
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			delete(values, key)
		}
	}
	return values
}

// LoadAPSettings reads a device list from a .csv or .yaml/.yml file.
func LoadAPSettings(path string) ([]APSetting, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadAPSettingsCSV(path)
	case ".yaml", ".yml":
		return loadAPSettingsYAML(path)
	default:
		return nil, fmt.Errorf("unsupported device list format %q (want .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

func loadAPSettingsCSV(path string) ([]APSetting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open device list: %w", err)
	}
	defer f.Close() // nolint:errcheck // read-only file

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read device list header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, field := range apSettingsFields {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("device list is missing columns: %s", strings.Join(missing, ", "))
	}

	var aps []APSetting
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read device list row: %w", err)
		}

		cell := func(field string) string {
			i := index[field]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		aps = append(aps, APSetting{
			SerialNumber:       cell("serial_number"),
			Hostname:           cell("hostname"),
			IPAddress:          cell("ip_address"),
			Zonename:           cell("zonename"),
			AChannel:           cell("achannel"),
			ATxPower:           cell("atxpower"),
			GChannel:           cell("gchannel"),
			GTxPower:           cell("gtxpower"),
			Dot11aRadioDisable: cell("dot11a_radio_disable"),
			Dot11gRadioDisable: cell("dot11g_radio_disable"),
			USBPortDisable:     cell("usb_port_disable"),
		})
	}
	return aps, nil
}

func loadAPSettingsYAML(path string) ([]APSetting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open device list: %w", err)
	}

	var doc struct {
		APs []APSetting `yaml:"aps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse device list: %w", err)
	}
	return doc.APs, nil
}

// APSettingsResult summarizes one workflow run.
type APSettingsResult struct {
	RunID     string   `json:"run_id"`
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// APSettingsWorkflow updates existing APs from a device list, two API
// calls per AP: read the current settings, merge the row's non-empty
// fields over them, write the merged document back.
type APSettingsWorkflow struct {
	Configuration *api.Configuration
	Logger        *zap.Logger
}

// Run executes the workflow and reports per-AP success. Row errors are
// collected rather than aborting the run.
func (w *APSettingsWorkflow) Run(ctx context.Context, aps []APSetting) (*APSettingsResult, error) {
	if w == nil || w.Configuration == nil {
		return nil, errors.New("ap settings workflow is not configured")
	}
	if len(aps) == 0 {
		return nil, errors.New("device list is empty")
	}

	result := &APSettingsResult{RunID: uuid.NewString()}
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", result.RunID))

	for _, ap := range aps {
		serial := strings.TrimSpace(ap.SerialNumber)
		if serial == "" {
			logger.Error("device list row has no serial number, skipping")
			result.Failed = append(result.Failed, "")
			continue
		}

		merged, err := w.mergedSettings(ctx, serial, ap)
		if err != nil {
			logger.Error("reading ap settings failed", zap.String("serial", serial), zap.Error(err))
			result.Failed = append(result.Failed, serial)
			continue
		}

		if _, err := w.Configuration.UpdateAPSettings(ctx, serial, merged); err != nil {
			logger.Error("updating ap settings failed", zap.String("serial", serial), zap.Error(err))
			result.Failed = append(result.Failed, serial)
			continue
		}

		logger.Info("ap settings updated", zap.String("serial", serial))
		result.Succeeded = append(result.Succeeded, serial)
	}

	return result, nil
}

// mergedSettings fetches the AP's current settings and applies the row's
// non-empty fields over them. Fields the gateway does not report are not
// invented.
func (w *APSettingsWorkflow) mergedSettings(ctx context.Context, serial string, ap APSetting) (map[string]any, error) {
	resp, err := w.Configuration.GetAPSettings(ctx, serial)
	if err != nil {
		return nil, err
	}

	existing, ok := resp.Body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected ap settings payload for %s", serial)
	}

	overrides := ap.overrides()
	merged := make(map[string]any, len(existing))
	for key, value := range existing {
		if override, ok := overrides[key]; ok {
			merged[key] = override
		} else {
			merged[key] = value
		}
	}
	return merged, nil
}
