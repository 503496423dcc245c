// Package api holds thin wrappers over the Central endpoint categories.
// Every method builds one request descriptor and hands it to the dispatcher;
// no endpoint wrapper keeps state of its own.
package api

import (
	"net/url"
	"strconv"
)

// pageParams returns pagination query parameters. A zero limit is omitted,
// which the gateway interprets as "all".
func pageParams(offset, limit int) url.Values {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}
