package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/api"
)

var (
	auditUsername       string
	auditClassification string
	auditStartTime      int64
	auditEndTime        int64
	auditGroupName      string
	auditDeviceID       string
	auditOffset         int
	auditLimit          int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query audit trail and event logs",
}

var auditLogsCmd = &cobra.Command{
	Use:   "logs [id]",
	Short: "List audit trail logs, or show one log in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		logs := &api.AuditLogs{Client: client}

		if len(args) == 1 {
			resp, err := logs.GetTrailLogDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		}

		resp, err := logs.GetTrailLogs(cmd.Context(), api.TrailLogFilter{
			Username:       auditUsername,
			Classification: auditClassification,
			StartTime:      auditStartTime,
			EndTime:        auditEndTime,
		}, auditOffset, auditLimit)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var auditEventsCmd = &cobra.Command{
	Use:   "events [id]",
	Short: "List event logs, or show one event in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		logs := &api.AuditLogs{Client: client}

		if len(args) == 1 {
			resp, err := logs.GetEventLogDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		}

		resp, err := logs.GetEventLogs(cmd.Context(), auditGroupName, auditDeviceID, auditOffset, auditLimit)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditLogsCmd)
	auditCmd.AddCommand(auditEventsCmd)

	auditCmd.PersistentFlags().IntVar(&auditOffset, "offset", 0, "pagination offset")
	auditCmd.PersistentFlags().IntVar(&auditLimit, "limit", 100, "page size")

	auditLogsCmd.Flags().StringVar(&auditUsername, "username", "", "filter by username")
	auditLogsCmd.Flags().StringVar(&auditClassification, "classification", "", "filter by classification")
	auditLogsCmd.Flags().Int64Var(&auditStartTime, "start-time", 0, "filter from unix timestamp")
	auditLogsCmd.Flags().Int64Var(&auditEndTime, "end-time", 0, "filter until unix timestamp")

	auditEventsCmd.Flags().StringVar(&auditGroupName, "group", "", "filter by group name")
	auditEventsCmd.Flags().StringVar(&auditDeviceID, "device", "", "filter by device serial")
}
