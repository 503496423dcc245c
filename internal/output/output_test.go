package output

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/store"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, format)

	format, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseFormat("markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, format)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func deviceResponse() *central.Response {
	raw := []byte(`{"devices":[{"serial":"CN12345678","macaddr":"aa:bb:cc:dd:ee:ff","model":"AP-515","device_type":"iap","tier_type":"foundation","services":["dm"]}],"total":1}`)
	return &central.Response{StatusCode: http.StatusOK, Raw: raw}
}

func TestDevicesTable(t *testing.T) {
	rendered, err := Devices(FormatTable, deviceResponse())
	require.NoError(t, err)
	assert.Contains(t, rendered, "CN12345678")
	assert.Contains(t, rendered, "AP-515")
	assert.Contains(t, rendered, "1 total")
}

func TestDevicesMarkdown(t *testing.T) {
	rendered, err := Devices(FormatMarkdown, deviceResponse())
	require.NoError(t, err)
	assert.Contains(t, rendered, "| CN12345678 |")
}

func TestDevicesJSONPassesBodyThrough(t *testing.T) {
	resp := deviceResponse()
	resp.Body = map[string]any{"total": float64(1)}

	rendered, err := Devices(FormatJSON, resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1}`, rendered)
}

func TestSitesTable(t *testing.T) {
	raw := []byte(`{"sites":[{"site_id":42,"site_name":"HQ","city":"Santa Clara","state":"CA","country":"United States","associated_device_count":7}],"total":1}`)
	resp := &central.Response{StatusCode: http.StatusOK, Raw: raw}

	rendered, err := Sites(FormatTable, resp)
	require.NoError(t, err)
	assert.Contains(t, rendered, "HQ")
	assert.Contains(t, rendered, "Santa Clara")
}

func TestSubscriptionsTable(t *testing.T) {
	raw := []byte(`{"subscriptions":[{"subscription_key":"ABC123","license_type":"foundation_ap","quantity":50,"available":12,"status":"OK","end_date":1791936000000}],"total":1}`)
	resp := &central.Response{StatusCode: http.StatusOK, Raw: raw}

	rendered, err := Subscriptions(FormatTable, resp)
	require.NoError(t, err)
	assert.Contains(t, rendered, "ABC123")
	assert.Contains(t, rendered, "2026-10-14")
}

func TestQuotaStatusTableShowsUnknownCounters(t *testing.T) {
	status := central.RateLimitStatus{LimitSecond: 7, RemainingSecond: 3, LimitDay: -1, RemainingDay: -1}

	rendered, err := QuotaStatus(FormatTable, status)
	require.NoError(t, err)
	assert.Contains(t, rendered, "second")
	assert.Contains(t, rendered, "-")
}

func TestQuotaUsageTable(t *testing.T) {
	usage := []store.QuotaUsage{{
		Path:            "/central/v2/sites",
		StatusCode:      429,
		LimitSecond:     7,
		RemainingSecond: 0,
		LimitDay:        5000,
		RemainingDay:    4800,
		ObservedAt:      time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}}

	rendered, err := QuotaUsage(FormatTable, usage)
	require.NoError(t, err)
	assert.Contains(t, rendered, "/central/v2/sites")
	assert.Contains(t, rendered, "0/7")
	assert.Contains(t, rendered, "4800/5000")
}
