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
	rogueAPsPath       = "/rapids/v1/rogue_aps"
	interferingAPsPath = "/rapids/v1/interfering_aps"
	suspectAPsPath     = "/rapids/v1/suspect_aps"
	neighborAPsPath    = "/rapids/v1/neighbor_aps"
	infraAttacksPath   = "/rapids/v1/wids/infrastructure_attacks"
	clientAttacksPath  = "/rapids/v1/wids/client_attacks"
	widsEventsPath     = "/rapids/v1/wids/events"
)

// Rapids wraps the rogue AP and wireless intrusion detection endpoints.
type Rapids struct {
	Client *central.Client
}

// RapidsFilter narrows a rogue or intrusion query. Zero values are omitted.
// StartTime and EndTime are epoch milliseconds; FromTimestamp and ToTimestamp
// are epoch seconds and supersede them on the gateway side.
type RapidsFilter struct {
	Groups        []string
	Labels        []string
	Sites         []string
	SwarmID       string
	StartTime     int64
	EndTime       int64
	FromTimestamp int64
	ToTimestamp   int64
}

func (f RapidsFilter) apply(params url.Values) {
	for _, group := range f.Groups {
		params.Add("group", group)
	}
	for _, label := range f.Labels {
		params.Add("label", label)
	}
	for _, site := range f.Sites {
		params.Add("site", site)
	}
	setIfPresent(params, "swarm_id", f.SwarmID)
	if f.StartTime > 0 {
		params.Set("start", strconv.FormatInt(f.StartTime, 10))
	}
	if f.EndTime > 0 {
		params.Set("end", strconv.FormatInt(f.EndTime, 10))
	}
	if f.FromTimestamp > 0 {
		params.Set("from_timestamp", strconv.FormatInt(f.FromTimestamp, 10))
	}
	if f.ToTimestamp > 0 {
		params.Set("to_timestamp", strconv.FormatInt(f.ToTimestamp, 10))
	}
}

// ListRogueAPs lists rogue APs seen over the filter's time window.
func (r *Rapids) ListRogueAPs(ctx context.Context, filter RapidsFilter, offset, limit int) (*central.Response, error) {
	return r.listAPs(ctx, rogueAPsPath, filter, offset, limit)
}

// ListInterferingAPs lists interfering APs seen over the filter's time window.
func (r *Rapids) ListInterferingAPs(ctx context.Context, filter RapidsFilter, offset, limit int) (*central.Response, error) {
	return r.listAPs(ctx, interferingAPsPath, filter, offset, limit)
}

// ListSuspectAPs lists suspect APs seen over the filter's time window.
func (r *Rapids) ListSuspectAPs(ctx context.Context, filter RapidsFilter, offset, limit int) (*central.Response, error) {
	return r.listAPs(ctx, suspectAPsPath, filter, offset, limit)
}

// ListNeighborAPs lists neighbor APs seen over the filter's time window.
func (r *Rapids) ListNeighborAPs(ctx context.Context, filter RapidsFilter, offset, limit int) (*central.Response, error) {
	return r.listAPs(ctx, neighborAPsPath, filter, offset, limit)
}

// ListClientAttacks lists WIDS client attacks. An empty sort means newest
// first.
func (r *Rapids) ListClientAttacks(ctx context.Context, filter RapidsFilter, sort string, offset, limit int) (*central.Response, error) {
	return r.listAttacks(ctx, clientAttacksPath, filter, sort, true, offset, limit)
}

// ListInfrastructureAttacks lists WIDS infrastructure attacks. An empty sort
// means newest first.
func (r *Rapids) ListInfrastructureAttacks(ctx context.Context, filter RapidsFilter, sort string, offset, limit int) (*central.Response, error) {
	return r.listAttacks(ctx, infraAttacksPath, filter, sort, true, offset, limit)
}

// ListWIDSEvents lists raw WIDS events. An empty sort means newest first.
func (r *Rapids) ListWIDSEvents(ctx context.Context, filter RapidsFilter, sort string, offset, limit int) (*central.Response, error) {
	return r.listAttacks(ctx, widsEventsPath, filter, sort, false, offset, limit)
}

func (r *Rapids) listAPs(ctx context.Context, path string, filter RapidsFilter, offset, limit int) (*central.Response, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("rapids service is not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	params := pageParams(offset, limit)
	filter.apply(params)

	return r.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   path,
		Params: params,
	})
}

func (r *Rapids) listAttacks(ctx context.Context, path string, filter RapidsFilter, sort string, calculateTotal bool, offset, limit int) (*central.Response, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("rapids service is not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	if sort == "" {
		sort = "-ts"
	}

	params := pageParams(offset, limit)
	params.Set("sort", sort)
	if calculateTotal {
		params.Set("calculate_total", "true")
	}
	filter.apply(params)

	return r.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   path,
		Params: params,
	})
}
