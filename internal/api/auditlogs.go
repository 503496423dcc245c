package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	trailLogsPath       = "/platform/auditlogs/v1/logs"
	eventLogsPath       = "/auditlogs/v1/events"
	eventLogDetailsPath = "/auditlogs/v1/event_details"
)

// AuditLogs wraps the audit trail and event log endpoints.
type AuditLogs struct {
	Client *central.Client
}

// TrailLogFilter narrows a trail log query. Zero values are omitted.
type TrailLogFilter struct {
	Username       string
	StartTime      int64
	EndTime        int64
	Description    string
	Target         string
	Classification string
	CustomerName   string
	IPAddress      string
	AppID          string
}

// GetTrailLogs lists audit trail logs in reverse chronological order.
// The gateway returns at most the first 10000 results; use the filter for
// anything older.
func (a *AuditLogs) GetTrailLogs(ctx context.Context, filter TrailLogFilter, offset, limit int) (*central.Response, error) {
	if a == nil || a.Client == nil {
		return nil, errors.New("audit logs service is not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	params := pageParams(offset, limit)
	setIfPresent(params, "username", filter.Username)
	setIfPresent(params, "description", filter.Description)
	setIfPresent(params, "target", filter.Target)
	setIfPresent(params, "classification", filter.Classification)
	setIfPresent(params, "customer_name", filter.CustomerName)
	setIfPresent(params, "ip_address", filter.IPAddress)
	setIfPresent(params, "app_id", filter.AppID)
	if filter.StartTime > 0 {
		params.Set("start_time", strconv.FormatInt(filter.StartTime, 10))
	}
	if filter.EndTime > 0 {
		params.Set("end_time", strconv.FormatInt(filter.EndTime, 10))
	}

	return a.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   trailLogsPath,
		Params: params,
	})
}

// GetTrailLogDetail returns the detail record of one audit event.
func (a *AuditLogs) GetTrailLogDetail(ctx context.Context, id string) (*central.Response, error) {
	if a == nil || a.Client == nil {
		return nil, errors.New("audit logs service is not configured")
	}
	if id == "" {
		return nil, errors.New("audit event id is required")
	}
	return a.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   trailLogsPath + "/" + url.PathEscape(id),
	})
}

// GetEventLogs lists event logs, optionally scoped to a group or device.
func (a *AuditLogs) GetEventLogs(ctx context.Context, groupName, deviceID string, offset, limit int) (*central.Response, error) {
	if a == nil || a.Client == nil {
		return nil, errors.New("audit logs service is not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	params := pageParams(offset, limit)
	setIfPresent(params, "group_name", groupName)
	setIfPresent(params, "device_id", deviceID)

	return a.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   eventLogsPath,
		Params: params,
	})
}

// GetEventLogDetail returns the detail record of one event log.
func (a *AuditLogs) GetEventLogDetail(ctx context.Context, id string) (*central.Response, error) {
	if a == nil || a.Client == nil {
		return nil, errors.New("audit logs service is not configured")
	}
	if id == "" {
		return nil, errors.New("event id is required")
	}
	return a.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   eventLogDetailsPath + "/" + url.PathEscape(id),
	})
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
