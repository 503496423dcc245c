package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
	"github.com/gocentral/gocentral/internal/output"
	"github.com/gocentral/gocentral/internal/workflow"
)

var workflowFile string

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run multi-step configuration workflows",
}

var workflowAPSettingsCmd = &cobra.Command{
	Use:   "apsettings",
	Short: "Update existing AP settings from a CSV or YAML device list",
	RunE: func(cmd *cobra.Command, args []string) error {
		aps, err := workflow.LoadAPSettings(workflowFile)
		if err != nil {
			return err
		}

		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		wf := &workflow.APSettingsWorkflow{
			Configuration: &api.Configuration{Client: client},
			Logger:        client.Logger,
		}
		result, err := wf.Run(cmd.Context(), aps)
		if err != nil {
			return err
		}

		rendered, err := output.RenderJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(rendered)

		if len(result.Failed) > 0 {
			return fmt.Errorf("%d of %d devices failed", len(result.Failed), len(aps))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workflowCmd)
	workflowCmd.AddCommand(workflowAPSettingsCmd)

	workflowAPSettingsCmd.Flags().StringVarP(&workflowFile, "file", "f", "", "device list (.csv, .yaml or .yml)")
	workflowAPSettingsCmd.MarkFlagRequired("file") // nolint:errcheck // flag exists
}
