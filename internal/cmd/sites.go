package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
	"github.com/gocentral/gocentral/internal/output"
)

var (
	siteOffset     int
	siteLimit      int
	siteAddress    string
	siteCity       string
	siteState      string
	siteCountry    string
	siteZipcode    string
	siteLatitude   float64
	siteLongitude  float64
	siteDeviceType string
	siteID         int
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage sites and device associations",
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat()
		if err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.GetSites(cmd.Context(), true, siteOffset, siteLimit)
		if err != nil {
			return err
		}

		rendered, err := output.Sites(format, resp)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var siteCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a site",
	Long:  "Create a site with either a postal address (--address, --city, ...) or map coordinates (--latitude and --longitude), not both.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.CreateSite(cmd.Context(), args[0], siteAddressFlag(), siteLocationFlag(cmd))
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var siteUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID <= 0 {
			return fmt.Errorf("--id is required")
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.UpdateSite(cmd.Context(), siteID, args[0], siteAddressFlag(), siteLocationFlag(cmd))
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var siteDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a site",
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID <= 0 {
			return fmt.Errorf("--id is required")
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.DeleteSite(cmd.Context(), siteID)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var siteAssociateCmd = &cobra.Command{
	Use:   "associate <serial>...",
	Short: "Associate devices with a site",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID <= 0 {
			return fmt.Errorf("--id is required")
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.AssociateDevices(cmd.Context(), siteID, siteDeviceType, args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var siteUnassociateCmd = &cobra.Command{
	Use:   "unassociate <serial>...",
	Short: "Unassociate devices from a site",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID <= 0 {
			return fmt.Errorf("--id is required")
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		mon := &api.Monitoring{Client: client}
		resp, err := mon.UnassociateDevices(cmd.Context(), siteID, siteDeviceType, args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func siteAddressFlag() *api.SiteAddress {
	if siteAddress == "" && siteCity == "" && siteState == "" && siteCountry == "" && siteZipcode == "" {
		return nil
	}
	return &api.SiteAddress{
		Address: siteAddress,
		City:    siteCity,
		State:   siteState,
		Country: siteCountry,
		Zipcode: siteZipcode,
	}
}

func siteLocationFlag(cmd *cobra.Command) *api.Geolocation {
	if !cmd.Flags().Changed("latitude") && !cmd.Flags().Changed("longitude") {
		return nil
	}
	return &api.Geolocation{Latitude: siteLatitude, Longitude: siteLongitude}
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteCreateCmd)
	siteCmd.AddCommand(siteUpdateCmd)
	siteCmd.AddCommand(siteDeleteCmd)
	siteCmd.AddCommand(siteAssociateCmd)
	siteCmd.AddCommand(siteUnassociateCmd)

	siteListCmd.Flags().IntVar(&siteOffset, "offset", 0, "pagination offset")
	siteListCmd.Flags().IntVar(&siteLimit, "limit", 0, "page size")

	for _, c := range []*cobra.Command{siteCreateCmd, siteUpdateCmd} {
		c.Flags().StringVar(&siteAddress, "address", "", "street address")
		c.Flags().StringVar(&siteCity, "city", "", "city")
		c.Flags().StringVar(&siteState, "state", "", "state")
		c.Flags().StringVar(&siteCountry, "country", "", "country")
		c.Flags().StringVar(&siteZipcode, "zipcode", "", "postal code")
		c.Flags().Float64Var(&siteLatitude, "latitude", 0, "latitude")
		c.Flags().Float64Var(&siteLongitude, "longitude", 0, "longitude")
	}

	for _, c := range []*cobra.Command{siteUpdateCmd, siteDeleteCmd, siteAssociateCmd, siteUnassociateCmd} {
		c.Flags().IntVar(&siteID, "id", 0, "site id")
	}
	for _, c := range []*cobra.Command{siteAssociateCmd, siteUnassociateCmd} {
		c.Flags().StringVar(&siteDeviceType, "device-type", "IAP", "device type: IAP, ArubaSwitch, CX, MobilityController")
	}
}
