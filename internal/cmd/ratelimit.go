package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/output"
)

var (
	rateLimitEntries int
	rateLimitMaxAge  time.Duration
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Inspect stored API quota observations",
}

var rateLimitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the gateway and report the current quota headers",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat()
		if err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		probe := &central.Request{
			Method: http.MethodGet,
			Path:   "/platform/device_inventory/v1/devices",
			Params: url.Values{"limit": {"1"}},
		}
		resp, err := client.Execute(cmd.Context(), probe)
		if err != nil {
			return err
		}

		if appConfig != nil && appConfig.Token.Cache == "store" {
			db, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close() // nolint:errcheck // best-effort cleanup
			if err := db.RecordQuotaUsage(cmd.Context(), probe.Path, resp.StatusCode, resp.RateLimit); err != nil {
				return err
			}
		}

		rendered, err := output.QuotaStatus(format, resp.RateLimit)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var rateLimitShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recent quota observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat()
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		usage, err := db.LatestQuotaUsage(cmd.Context(), rateLimitEntries)
		if err != nil {
			return err
		}

		rendered, err := output.QuotaUsage(format, usage)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var rateLimitPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete quota observations older than --max-age",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		deleted, err := db.PruneQuotaUsage(cmd.Context(), time.Now().Add(-rateLimitMaxAge))
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d quota observations\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
	rateLimitCmd.AddCommand(rateLimitStatusCmd)
	rateLimitCmd.AddCommand(rateLimitShowCmd)
	rateLimitCmd.AddCommand(rateLimitPruneCmd)

	rateLimitShowCmd.Flags().IntVar(&rateLimitEntries, "entries", 20, "number of observations to show")
	rateLimitPruneCmd.Flags().DurationVar(&rateLimitMaxAge, "max-age", 7*24*time.Hour, "keep observations newer than this")
}
