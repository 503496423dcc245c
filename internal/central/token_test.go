package central

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestTokenValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.False(t, (*Token)(nil).Valid(now))
	require.False(t, (&Token{}).Valid(now))

	token := &Token{AccessToken: "abc", ExpiresIn: 7200, ObtainedAt: now.Add(-time.Hour)}
	require.True(t, token.Valid(now))

	// Inside the safety skew counts as expired.
	token.ObtainedAt = now.Add(-2*time.Hour + 30*time.Second)
	require.False(t, token.Valid(now))

	// No expiry metadata: assume valid, let the gateway's 401 decide.
	require.True(t, (&Token{AccessToken: "abc"}).Valid(now))
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	gateway := centraltest.New(t)
	gateway.AccessToken = "new-access"

	client := newTestClient(gateway)
	token, err := client.RefreshToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "new-access", token.AccessToken)
	require.Equal(t, "rotated-refresh-1", token.RefreshToken)
	require.Equal(t, 7200, token.ExpiresIn)
	require.False(t, token.ObtainedAt.IsZero())
	require.Same(t, token, client.Token)
}

func TestRefreshTokenRequiresCredentials(t *testing.T) {
	gateway := centraltest.New(t)

	client := newTestClient(gateway)
	client.ClientSecret = ""
	_, err := client.RefreshToken(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, 0, gateway.RefreshCalls)

	client = newTestClient(gateway)
	client.Token.RefreshToken = ""
	_, err = client.RefreshToken(context.Background())
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, 0, gateway.RefreshCalls)
}

func TestRefreshTokenPersistsToStore(t *testing.T) {
	gateway := centraltest.New(t)
	gateway.AccessToken = "stored-access"

	store := &FileTokenStore{Dir: t.TempDir(), CustomerID: "customer-1", ClientID: "client-id"}
	client := newTestClient(gateway)
	client.Store = store

	_, err := client.RefreshToken(context.Background())
	require.NoError(t, err)

	cached, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Equal(t, "stored-access", cached.AccessToken)
}

func TestEnsureTokenLoadsFromStore(t *testing.T) {
	gateway := centraltest.New(t)

	store := &FileTokenStore{Dir: t.TempDir(), CustomerID: "customer-1", ClientID: "client-id"}
	cached := &Token{
		AccessToken:  "cached-access",
		RefreshToken: "cached-refresh",
		ExpiresIn:    7200,
		ObtainedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Store(context.Background(), cached))

	client := newTestClient(gateway)
	client.Token = nil
	client.Store = store

	require.NoError(t, client.ensureToken(context.Background()))
	require.Equal(t, "cached-access", client.Token.AccessToken)
	require.Equal(t, 0, gateway.RefreshCalls)
}

func TestEnsureTokenPrefersCachedPairOverSeed(t *testing.T) {
	gateway := centraltest.New(t)
	gateway.Handle(http.MethodGet, "/monitoring/v2/aps", func(w http.ResponseWriter, r *http.Request) {
		if !centraltest.RequireBearer(w, r, "cached-access") {
			return
		}
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"count":0}`))
	})

	store := &FileTokenStore{Dir: t.TempDir(), CustomerID: "customer-1", ClientID: "client-id"}
	require.NoError(t, store.Store(context.Background(), &Token{
		AccessToken:  "cached-access",
		RefreshToken: "rotated-refresh-1",
		ExpiresIn:    7200,
		ObtainedAt:   time.Now().UTC(),
	}))

	// Seed credentials as a config would: a refresh token only. The stored
	// pair is newer and must win without a refresh round-trip.
	client := newTestClient(gateway)
	client.Token = &Token{RefreshToken: "stale-from-config"}
	client.Store = store

	resp, err := client.Execute(context.Background(), &Request{Method: "GET", Path: "/monitoring/v2/aps"})
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Equal(t, 0, gateway.RefreshCalls)
	require.Equal(t, "cached-access", client.Token.AccessToken)
	require.Equal(t, "rotated-refresh-1", client.Token.RefreshToken)
}

func TestEnsureTokenRefreshesWithCachedRefreshToken(t *testing.T) {
	gateway := centraltest.New(t)

	store := &FileTokenStore{Dir: t.TempDir(), CustomerID: "customer-1", ClientID: "client-id"}
	require.NoError(t, store.Store(context.Background(), &Token{
		AccessToken:  "expired-access",
		RefreshToken: "cached-refresh",
		ExpiresIn:    7200,
		ObtainedAt:   time.Now().UTC().Add(-3 * time.Hour),
	}))

	client := newTestClient(gateway)
	client.Token = &Token{RefreshToken: "stale-from-config"}
	client.Store = store

	require.NoError(t, client.ensureToken(context.Background()))
	require.Equal(t, 1, gateway.RefreshCalls)
	// The grant must have used the cached pair's rotated refresh token, not
	// the seed.
	require.Equal(t, "rotated-cached-refresh", client.Token.RefreshToken)
}
