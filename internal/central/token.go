package central

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// expirySkew flips a token to expired slightly before the gateway would,
// so a refresh happens on our side of the cutoff.
const expirySkew = 60 * time.Second

// Token holds an API gateway token pair.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	ObtainedAt   time.Time `json:"obtained_at,omitempty"`
}

// Valid reports whether the access token is present and not past its expiry
// at the given instant. Tokens without expiry metadata are assumed valid
// until the gateway rejects them.
func (t *Token) Valid(now time.Time) bool {
	if t == nil || strings.TrimSpace(t.AccessToken) == "" {
		return false
	}
	if t.ExpiresIn <= 0 || t.ObtainedAt.IsZero() {
		return true
	}
	expiry := t.ObtainedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
	return now.Before(expiry.Add(-expirySkew))
}

// TokenStore caches token pairs between runs.
//
// The default file implementation writes an unencrypted JSON document;
// supply your own implementation for anything stricter.
type TokenStore interface {
	Load(ctx context.Context) (*Token, error)
	Store(ctx context.Context, token *Token) error
}

// RefreshToken exchanges the current refresh token for a new token pair via
// the OAuth refresh_token grant and installs the result on the client.
func (c *Client) RefreshToken(ctx context.Context) (*Token, error) {
	if c == nil {
		return nil, &AuthError{Op: "refresh", Message: "client is not configured"}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return nil, &AuthError{Op: "refresh", Message: "client_id and client_secret are required"}
	}
	if c.Token == nil || strings.TrimSpace(c.Token.RefreshToken) == "" {
		return nil, &AuthError{Op: "refresh", Message: "refresh token is not available"}
	}

	query := url.Values{}
	query.Set("client_id", c.ClientID)
	query.Set("client_secret", c.ClientSecret)
	query.Set("grant_type", "refresh_token")
	query.Set("refresh_token", c.Token.RefreshToken)

	reqURL := strings.TrimRight(c.BaseURL, "/") + tokenPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Message: "build refresh request", Err: err}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Message: "refresh request failed", Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Message: "read refresh response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{
			Op:      "refresh",
			Message: fmt.Sprintf("token refresh rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	token := &Token{}
	if err := json.Unmarshal(body, token); err != nil {
		return nil, &AuthError{Op: "refresh", Message: "decode refresh response", Err: err}
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, &AuthError{Op: "refresh", Message: "refresh response has no access token"}
	}
	token.ObtainedAt = c.now()

	c.Token = token
	if c.Logger != nil {
		c.Logger.Info("access token refreshed", zap.Int("expires_in", token.ExpiresIn))
	}
	if c.Store != nil {
		if err := c.Store.Store(ctx, token); err != nil && c.Logger != nil {
			c.Logger.Warn("storing refreshed token failed", zap.Error(err))
		}
	}

	return token, nil
}

// ensureToken makes sure a usable access token is installed before a request
// goes out. The cached pair takes precedence over seed credentials: the
// gateway rotates refresh tokens on every grant, so after the first refresh
// only the stored pair is still honored. An expired or absent token triggers
// exactly one refresh.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.Token.Valid(c.now()) {
		return nil
	}

	if c.Store != nil {
		if cached, err := c.Store.Load(ctx); err == nil && cached != nil {
			if cached.Valid(c.now()) {
				c.Token = cached
				return nil
			}
			if strings.TrimSpace(cached.RefreshToken) != "" {
				c.Token = cached
			}
		}
	}

	_, err := c.RefreshToken(ctx)
	return err
}
