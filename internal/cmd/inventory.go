package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
	"github.com/gocentral/gocentral/internal/output"
)

var (
	inventorySKU    string
	inventoryOffset int
	inventoryLimit  int
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage the device inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices in the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat()
		if err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		inv := &api.Inventory{Client: client}
		resp, err := inv.GetInventory(cmd.Context(), inventorySKU, inventoryOffset, inventoryLimit)
		if err != nil {
			return err
		}

		rendered, err := output.Devices(format, resp)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var inventoryArchiveCmd = &cobra.Command{
	Use:   "archive <serial>...",
	Short: "Archive devices by serial number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		inv := &api.Inventory{Client: client}
		resp, err := inv.ArchiveDevices(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var inventoryUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <serial>...",
	Short: "Unarchive devices by serial number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		inv := &api.Inventory{Client: client}
		resp, err := inv.UnarchiveDevices(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add <serial:mac>...",
	Short: "Add devices to the inventory",
	Long:  "Add devices to the inventory. Each argument is a serial and MAC address pair joined by a colon, e.g. CN12345678:aa-bb-cc-dd-ee-ff.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		devices := make([]api.NewDevice, 0, len(args))
		for _, arg := range args {
			serial, mac, ok := strings.Cut(arg, ":")
			if !ok || serial == "" || mac == "" {
				return fmt.Errorf("invalid device %q: want serial:mac", arg)
			}
			devices = append(devices, api.NewDevice{Serial: serial, Mac: mac})
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		inv := &api.Inventory{Client: client}
		resp, err := inv.AddDevices(cmd.Context(), devices)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryArchiveCmd)
	inventoryCmd.AddCommand(inventoryUnarchiveCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)

	inventoryListCmd.Flags().StringVar(&inventorySKU, "sku", "all", "SKU type: all, iap, switch, controller, gateway")
	inventoryListCmd.Flags().IntVar(&inventoryOffset, "offset", 0, "pagination offset")
	inventoryListCmd.Flags().IntVar(&inventoryLimit, "limit", 0, "page size (0 fetches the gateway default)")
}
