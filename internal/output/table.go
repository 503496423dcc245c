package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/store"
)

// Devices renders a device inventory response.
func Devices(format Format, resp *central.Response) (string, error) {
	if resp == nil {
		return "", nil
	}
	if format == FormatJSON {
		return RenderJSON(resp.Body)
	}

	var page struct {
		Devices []struct {
			Serial     string   `json:"serial"`
			MacAddr    string   `json:"macaddr"`
			Model      string   `json:"model"`
			DeviceType string   `json:"device_type"`
			TierType   string   `json:"tier_type"`
			Services   []string `json:"services"`
		} `json:"devices"`
		Total int `json:"total"`
	}
	if err := resp.Decode(&page); err != nil {
		return "", fmt.Errorf("decode device inventory: %w", err)
	}

	t := newTable()
	t.AppendHeader(table.Row{"Serial", "MAC", "Model", "Type", "Tier", "Services"})
	for _, d := range page.Devices {
		t.AppendRow(table.Row{d.Serial, d.MacAddr, d.Model, d.DeviceType, d.TierType, strings.Join(d.Services, ", ")})
	}
	if page.Total > 0 {
		t.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d total", page.Total)})
	}
	return render(format, t), nil
}

// Sites renders a site list response.
func Sites(format Format, resp *central.Response) (string, error) {
	if resp == nil {
		return "", nil
	}
	if format == FormatJSON {
		return RenderJSON(resp.Body)
	}

	var page struct {
		Sites []struct {
			SiteID      int    `json:"site_id"`
			SiteName    string `json:"site_name"`
			City        string `json:"city"`
			State       string `json:"state"`
			Country     string `json:"country"`
			DeviceCount int    `json:"associated_device_count"`
		} `json:"sites"`
		Total int `json:"total"`
	}
	if err := resp.Decode(&page); err != nil {
		return "", fmt.Errorf("decode sites: %w", err)
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "City", "State", "Country", "Devices"})
	for _, s := range page.Sites {
		t.AppendRow(table.Row{s.SiteID, s.SiteName, s.City, s.State, s.Country, s.DeviceCount})
	}
	if page.Total > 0 {
		t.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d total", page.Total)})
	}
	return render(format, t), nil
}

// Subscriptions renders a subscription key list response.
func Subscriptions(format Format, resp *central.Response) (string, error) {
	if resp == nil {
		return "", nil
	}
	if format == FormatJSON {
		return RenderJSON(resp.Body)
	}

	var page struct {
		Subscriptions []struct {
			Key         string `json:"subscription_key"`
			LicenseType string `json:"license_type"`
			Quantity    int    `json:"quantity"`
			Available   int    `json:"available"`
			Status      string `json:"status"`
			EndDate     int64  `json:"end_date"`
		} `json:"subscriptions"`
		Total int `json:"total"`
	}
	if err := resp.Decode(&page); err != nil {
		return "", fmt.Errorf("decode subscriptions: %w", err)
	}

	t := newTable()
	t.AppendHeader(table.Row{"Key", "License", "Qty", "Available", "Status", "Expires"})
	for _, s := range page.Subscriptions {
		expires := ""
		if s.EndDate > 0 {
			expires = time.UnixMilli(s.EndDate).UTC().Format("2006-01-02")
		}
		t.AppendRow(table.Row{s.Key, s.LicenseType, s.Quantity, s.Available, s.Status, expires})
	}
	if page.Total > 0 {
		t.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d total", page.Total)})
	}
	return render(format, t), nil
}

// QuotaStatus renders the dispatcher's last observed rate-limit snapshot.
func QuotaStatus(format Format, status central.RateLimitStatus) (string, error) {
	if format == FormatJSON {
		return RenderJSON(map[string]any{
			"limit_second":     status.LimitSecond,
			"remaining_second": status.RemainingSecond,
			"limit_day":        status.LimitDay,
			"remaining_day":    status.RemainingDay,
			"updated_at":       status.UpdatedAt,
		})
	}

	t := newTable()
	t.AppendHeader(table.Row{"Window", "Limit", "Remaining"})
	t.AppendRow(table.Row{"second", counter(status.LimitSecond), counter(status.RemainingSecond)})
	t.AppendRow(table.Row{"day", counter(status.LimitDay), counter(status.RemainingDay)})
	return render(format, t), nil
}

// QuotaUsage renders persisted quota observations, newest first.
func QuotaUsage(format Format, usage []store.QuotaUsage) (string, error) {
	if format == FormatJSON {
		return RenderJSON(usage)
	}

	t := newTable()
	t.AppendHeader(table.Row{"Observed", "Path", "Status", "Second", "Day"})
	for _, u := range usage {
		t.AppendRow(table.Row{
			u.ObservedAt.Format(time.RFC3339),
			u.Path,
			u.StatusCode,
			fmt.Sprintf("%s/%s", counter(u.RemainingSecond), counter(u.LimitSecond)),
			fmt.Sprintf("%s/%s", counter(u.RemainingDay), counter(u.LimitDay)),
		})
	}
	return render(format, t), nil
}

func counter(value int) string {
	if value < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", value)
}
