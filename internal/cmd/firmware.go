package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
)

var (
	firmwareGroup      string
	firmwareDeviceType string
	firmwareSerial     string
	firmwareSwarmID    string
	firmwareVersion    string
	firmwareReboot     bool
	firmwareModel      string
	firmwareScheduleAt int64
)

var firmwareCmd = &cobra.Command{
	Use:   "firmware",
	Short: "Manage device firmware",
}

var firmwareSwarmsCmd = &cobra.Command{
	Use:   "swarms",
	Short: "List firmware details of swarms",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		fw := &api.Firmware{Client: client}
		resp, err := fw.ListSwarms(cmd.Context(), firmwareGroup, 0, 0)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var firmwareVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List supported firmware versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		fw := &api.Firmware{Client: client}
		resp, err := fw.ListSupportedVersions(cmd.Context(), firmwareDeviceType, firmwareSwarmID)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var firmwareStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show upgrade status of a device or swarm",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		fw := &api.Firmware{Client: client}
		resp, err := fw.CheckStatus(cmd.Context(), firmwareSerial, firmwareSwarmID)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var firmwareUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Initiate a firmware upgrade",
	Long:  "Initiate a firmware upgrade for a device (--serial), a swarm (--swarm) or a group (--group with --device-type). An empty --firmware-version upgrades to the recommended release.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		fw := &api.Firmware{Client: client}
		resp, err := fw.Upgrade(cmd.Context(), api.UpgradeOptions{
			FirmwareVersion: firmwareVersion,
			Reboot:          firmwareReboot,
			DeviceType:      firmwareDeviceType,
			Model:           firmwareModel,
			Group:           firmwareGroup,
			Serial:          firmwareSerial,
			SwarmID:         firmwareSwarmID,
			ScheduleAt:      firmwareScheduleAt,
		})
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var firmwareCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a scheduled firmware upgrade",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		fw := &api.Firmware{Client: client}
		resp, err := fw.CancelUpgrade(cmd.Context(), firmwareSerial, firmwareSwarmID, firmwareDeviceType, firmwareGroup)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(firmwareCmd)
	firmwareCmd.AddCommand(firmwareSwarmsCmd)
	firmwareCmd.AddCommand(firmwareVersionsCmd)
	firmwareCmd.AddCommand(firmwareStatusCmd)
	firmwareCmd.AddCommand(firmwareUpgradeCmd)
	firmwareCmd.AddCommand(firmwareCancelCmd)

	firmwareCmd.PersistentFlags().StringVar(&firmwareGroup, "group", "", "group name")
	firmwareCmd.PersistentFlags().StringVar(&firmwareDeviceType, "device-type", "", "device type: IAP, MAS, HP, CONTROLLER")
	firmwareCmd.PersistentFlags().StringVar(&firmwareSerial, "serial", "", "device serial number")
	firmwareCmd.PersistentFlags().StringVar(&firmwareSwarmID, "swarm", "", "swarm id")

	firmwareUpgradeCmd.Flags().StringVar(&firmwareVersion, "firmware-version", "", "target firmware version")
	firmwareUpgradeCmd.Flags().BoolVar(&firmwareReboot, "reboot", false, "reboot after upgrade")
	firmwareUpgradeCmd.Flags().StringVar(&firmwareModel, "model", "", "device model (switch upgrades)")
	firmwareUpgradeCmd.Flags().Int64Var(&firmwareScheduleAt, "schedule-at", 0, "unix timestamp to schedule the upgrade")
}
