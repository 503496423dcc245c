package central

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Request describes one API call: method, endpoint path relative to the
// gateway base URL, optional query parameters and optional JSON body.
// A Request is consumed by a single Execute call and not retained.
type Request struct {
	Method string
	Path   string
	Params url.Values
	Body   any
}

// Response carries the gateway's answer. Body holds the parsed JSON
// document, or the raw text when the payload is not JSON.
type Response struct {
	StatusCode int
	Body       any
	Raw        []byte
	Header     http.Header
	RateLimit  RateLimitStatus
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Decode unmarshals the raw response payload into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Raw) == 0 {
		return nil
	}
	return json.Unmarshal(r.Raw, v)
}
