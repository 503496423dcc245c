package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
	"github.com/gocentral/gocentral/internal/central"
	"github.com/gocentral/gocentral/internal/output"
)

var (
	licenseType    string
	licenseOffset  int
	licenseLimit   int
	licenseSerials []string
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage device subscriptions",
}

var licenseKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List subscription keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat()
		if err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}
		resp, err := lic.GetSubscriptionKeys(cmd.Context(), licenseType, licenseOffset, licenseLimit)
		if err != nil {
			return err
		}

		rendered, err := output.Subscriptions(format, resp)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var licenseAssignCmd = &cobra.Command{
	Use:   "assign <service>...",
	Short: "Assign subscriptions to devices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}
		resp, err := lic.AssignSubscriptions(cmd.Context(), licenseSerials, args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var licenseUnassignCmd = &cobra.Command{
	Use:   "unassign <service>...",
	Short: "Remove subscriptions from devices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}
		resp, err := lic.UnassignSubscriptions(cmd.Context(), licenseSerials, args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var licenseStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show subscription usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}
		resp, err := lic.GetSubscriptionStats(cmd.Context(), licenseType, "")
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var licenseServicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List services enabled for the customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}
		resp, err := lic.GetEnabledServices(cmd.Context())
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var licenseAutoCmd = &cobra.Command{
	Use:   "auto [service]...",
	Short: "Show or enable auto-license services",
	Long:  "Without arguments, shows the current auto-license services. With service names, enables auto-licensing for them on all devices.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		lic := &api.Licensing{Client: client}

		var resp *central.Response
		if len(args) == 0 {
			resp, err = lic.GetAutoLicenseServices(cmd.Context())
		} else {
			resp, err = lic.SetAutoLicenseServices(cmd.Context(), args)
		}
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
	licenseCmd.AddCommand(licenseKeysCmd)
	licenseCmd.AddCommand(licenseAssignCmd)
	licenseCmd.AddCommand(licenseUnassignCmd)
	licenseCmd.AddCommand(licenseStatsCmd)
	licenseCmd.AddCommand(licenseServicesCmd)
	licenseCmd.AddCommand(licenseAutoCmd)

	licenseKeysCmd.Flags().StringVar(&licenseType, "type", "", "license type filter")
	licenseKeysCmd.Flags().IntVar(&licenseOffset, "offset", 0, "pagination offset")
	licenseKeysCmd.Flags().IntVar(&licenseLimit, "limit", 0, "page size")
	licenseStatsCmd.Flags().StringVar(&licenseType, "type", "all", "license type filter")
	licenseAssignCmd.Flags().StringSliceVar(&licenseSerials, "serials", nil, "device serial numbers")
	licenseUnassignCmd.Flags().StringSliceVar(&licenseSerials, "serials", nil, "device serial numbers")
}
