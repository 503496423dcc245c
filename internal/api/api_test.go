package api

import (
	"time"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/centraltest"
)

func newTestClient(g *centraltest.Gateway) *central.Client {
	client := central.NewClient(g.URL(), "client-id", "client-secret")
	client.CustomerID = "customer-1"
	client.Token = &central.Token{
		AccessToken:  "valid-token",
		RefreshToken: "refresh-1",
		ExpiresIn:    7200,
		ObtainedAt:   time.Now().UTC(),
	}
	client.Retry = central.RetryPolicy{MaxRetries: 1, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond}
	return client
}
