// Package centraltest provides an in-process stand-in for the Central API
// gateway, used by dispatcher and endpoint-wrapper tests.
package centraltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Gateway serves the OAuth token endpoint plus any test-registered API
// routes over an httptest server.
type Gateway struct {
	Router *chi.Mux
	Server *httptest.Server

	// RefreshCalls counts hits on the token endpoint.
	RefreshCalls int

	// RefreshStatus overrides the token endpoint status; 0 means 200.
	RefreshStatus int

	// AccessToken is issued by the next refresh. When empty, tokens are
	// issued as issued-1, issued-2, ...
	AccessToken string

	// ExpiresIn is the expires_in value of issued tokens (default 7200).
	ExpiresIn int
}

// New starts a gateway and tears it down with the test.
func New(t *testing.T) *Gateway {
	t.Helper()

	g := &Gateway{Router: chi.NewRouter()}
	g.Router.Post("/oauth2/token", g.handleToken)
	g.Server = httptest.NewServer(g.Router)
	t.Cleanup(g.Server.Close)
	return g
}

// URL returns the gateway base URL.
func (g *Gateway) URL() string {
	return g.Server.URL
}

// Handle registers an API route on the gateway.
func (g *Gateway) Handle(method, pattern string, handler http.HandlerFunc) {
	g.Router.Method(strings.ToUpper(method), pattern, handler)
}

func (g *Gateway) handleToken(w http.ResponseWriter, r *http.Request) {
	g.RefreshCalls++

	if g.RefreshStatus != 0 && g.RefreshStatus != http.StatusOK {
		w.WriteHeader(g.RefreshStatus)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
		return
	}

	query := r.URL.Query()
	if query.Get("grant_type") != "refresh_token" || query.Get("refresh_token") == "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"unsupported_grant_type"}`)
		return
	}

	access := g.AccessToken
	if access == "" {
		access = fmt.Sprintf("issued-%d", g.RefreshCalls)
	}
	expires := g.ExpiresIn
	if expires == 0 {
		expires = 7200
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token":  access,
		"refresh_token": "rotated-" + query.Get("refresh_token"),
		"token_type":    "bearer",
		"expires_in":    expires,
	})
}

// WriteQuota sets the gateway rate-limit headers on a response.
func WriteQuota(w http.ResponseWriter, remainingSecond, remainingDay int) {
	w.Header().Set("X-RateLimit-Limit-Second", "7")
	w.Header().Set("X-RateLimit-Remaining-Second", strconv.Itoa(remainingSecond))
	w.Header().Set("X-RateLimit-Limit-Day", "5000")
	w.Header().Set("X-RateLimit-Remaining-Day", strconv.Itoa(remainingDay))
}

// RequireBearer answers 401 unless the request carries the expected token.
// It reports whether the request was authorized.
func RequireBearer(w http.ResponseWriter, r *http.Request, token string) bool {
	if r.Header.Get("Authorization") != "Bearer "+token {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_token"}`)
		return false
	}
	return true
}
