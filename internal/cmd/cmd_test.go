package cmd

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/config"
)

func TestSiteAddressFlag(t *testing.T) {
	siteAddress, siteCity, siteState, siteCountry, siteZipcode = "", "", "", "", ""
	require.Nil(t, siteAddressFlag())

	siteCity = "Portland"
	t.Cleanup(func() { siteCity = "" })
	addr := siteAddressFlag()
	require.NotNil(t, addr)
	require.Equal(t, "Portland", addr.City)
}

func TestSiteLocationFlag(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().Float64Var(&siteLatitude, "latitude", 0, "")
	c.Flags().Float64Var(&siteLongitude, "longitude", 0, "")

	require.Nil(t, siteLocationFlag(c))

	require.NoError(t, c.Flags().Set("latitude", "45.52"))
	loc := siteLocationFlag(c)
	require.NotNil(t, loc)
	require.Equal(t, 45.52, loc.Latitude)
}

func TestDispatcherLogLevel(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn"}}

	verbose = false
	require.Equal(t, "warn", dispatcherLogLevel(cfg))

	verbose = true
	t.Cleanup(func() { verbose = false })
	require.Equal(t, "debug", dispatcherLogLevel(cfg))
}

func TestNewTokenStoreBackends(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		ClientID:   "client-1",
		CustomerID: "customer-1",
	}

	cfg.Token.Cache = "none"
	ts, err := newTokenStore(ctx, cfg)
	require.NoError(t, err)
	require.Nil(t, ts)

	cfg.Token.Cache = "file"
	cfg.Token.Dir = t.TempDir()
	ts, err = newTokenStore(ctx, cfg)
	require.NoError(t, err)
	fileStore, ok := ts.(*central.FileTokenStore)
	require.True(t, ok)
	require.Equal(t, "customer-1", fileStore.CustomerID)

	cfg.Token.Cache = "redis"
	_, err = newTokenStore(ctx, cfg)
	require.ErrorContains(t, err, "unknown token cache backend")
}
