// Package central implements the authenticated request dispatcher for the
// Aruba Central API gateway: OAuth token refresh, per-second rate-limit
// retry and per-day quota tracking. Endpoint wrappers in internal/api are
// thin layers over Client.Execute.
package central

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const tokenPath = "/oauth2/token"

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Client dispatches authenticated requests against one API gateway with one
// credential set. It owns the token pair and the rate-limit snapshot; both
// are mutated by Execute. A Client is not safe for concurrent use by
// multiple goroutines — use one Client per credential context, or add
// external synchronization.
type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	CustomerID   string
	Token        *Token
	HTTPClient   *http.Client
	Logger       *zap.Logger
	Store        TokenStore
	Retry        RetryPolicy
	Clock        func() time.Time

	rateLimit    RateLimitStatus
	rateLimitSet bool
}

// NewClient returns a client with the default retry policy. The caller is
// expected to supply an *http.Client with a timeout.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
		Retry:        DefaultRetryPolicy(),
	}
}

// RateLimit returns the quota snapshot from the most recent response.
func (c *Client) RateLimit() RateLimitStatus {
	if c == nil || !c.rateLimitSet {
		return newRateLimitStatus()
	}
	return c.rateLimit
}

// Execute issues one API call and returns the parsed response.
//
// An expired or absent token is refreshed once before the request goes out;
// a refresh failure surfaces as *AuthError without the request being made.
// A 401 from the gateway triggers exactly one forced refresh-and-retry; a
// second 401 is *AuthError. A 429 with the per-second window spent waits
// for the advertised interval and retries under the client's RetryPolicy,
// surfacing *RateLimitError when the policy gives up. A 429 with the
// per-day quota spent is *QuotaExhaustedError with no retry. Any other
// non-2xx response returns the Response together with a *RequestError; the
// caller decides whether that is fatal.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("central client is not configured")
	}
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if !supportedMethods[method] {
		return nil, fmt.Errorf("http method %q is not supported by the gateway", req.Method)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, fmt.Errorf("gateway base url is required")
	}

	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	var (
		refreshed  bool
		throttled  int
		waited     time.Duration
		wait       = c.Retry.newBackOff()
		maxRetries = c.Retry.maxRetries()
	)

	for {
		resp, err := c.do(ctx, method, req)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			if refreshed {
				return resp, &AuthError{
					Op:      "execute",
					Message: fmt.Sprintf("gateway rejected credentials for %s %s after token refresh", method, req.Path),
				}
			}
			if c.Logger != nil {
				c.Logger.Warn("received 401, forcing token refresh",
					zap.String("method", method), zap.String("path", req.Path))
			}
			if _, err := c.RefreshToken(ctx); err != nil {
				return resp, err
			}
			refreshed = true

		// A 429 is classified by the headers of that response alone, never
		// by counters carried over from an earlier one.
		case resp.StatusCode == http.StatusTooManyRequests && headerCounter(resp.Header, headerRemainingDay) == 0:
			if c.Logger != nil {
				c.Logger.Error("per-day rate limit exhausted",
					zap.String("path", req.Path), zap.Int("limit_day", resp.RateLimit.LimitDay))
			}
			return resp, &QuotaExhaustedError{Path: req.Path, DayLimit: resp.RateLimit.LimitDay}

		case resp.StatusCode == http.StatusTooManyRequests && headerCounter(resp.Header, headerRemainingSecond) == 0:
			if throttled >= maxRetries {
				return resp, &RateLimitError{Path: req.Path, Attempts: throttled + 1, Waited: waited}
			}
			pause := retryAfter(resp.Header)
			if pause <= 0 {
				pause = wait.NextBackOff()
			}
			if c.Logger != nil {
				c.Logger.Info("per-second rate limit reached, retrying",
					zap.String("path", req.Path), zap.Duration("wait", pause))
			}
			if err := sleep(ctx, pause); err != nil {
				return resp, err
			}
			waited += pause
			throttled++

		case resp.OK():
			return resp, nil

		default:
			return resp, &RequestError{
				Method:     method,
				Path:       req.Path,
				StatusCode: resp.StatusCode,
				Body:       resp.Body,
			}
		}
	}
}

// do performs a single HTTP exchange and folds the rate-limit headers into
// the client snapshot.
func (c *Client) do(ctx context.Context, method string, req *Request) (*Response, error) {
	reqURL := c.BaseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Params) > 0 {
		reqURL += "?" + req.Params.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.Token.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.Path, err)
	}
	defer httpResp.Body.Close() // nolint:errcheck // best-effort cleanup

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", req.Path, err)
	}

	if !c.rateLimitSet {
		c.rateLimit = newRateLimitStatus()
		c.rateLimitSet = true
	}
	c.rateLimit.observe(httpResp.Header, c.now())

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Raw:        raw,
		Header:     httpResp.Header,
		RateLimit:  c.rateLimit,
	}

	if len(raw) > 0 {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err == nil {
			resp.Body = parsed
		} else {
			resp.Body = string(raw)
		}
	}

	return resp, nil
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) now() time.Time {
	if c != nil && c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}
