package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/analytics"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
)

func newExportEventsCmd(a *app) *cobra.Command {
	var linkID, format string

	cmd := &cobra.Command{
		Use:   "export-events",
		Short: "Dump recorded clicks as JSON or CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unsupported format %q, want json or csv", format)
			}

			store, err := a.Store()
			if err != nil {
				return err
			}
			events, err := services.NewTrackingService(store, store).ListEvents(cmd.Context(), linkID)
			if err != nil {
				return err
			}

			if format == "csv" {
				return analytics.WriteCSV(cmd.OutOrStdout(), events)
			}
			if events == nil {
				events = []domain.Event{}
			}
			return writeIndentedJSON(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().StringVar(&linkID, "link", "", "only events of this link ID")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var timeRange string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print global click statistics for a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Store()
			if err != nil {
				return err
			}
			summary, err := services.NewAnalyticsService(store, store).GetSummary(cmd.Context(), timeRange)
			if err != nil {
				return err
			}
			return writeIndentedJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&timeRange, "range", string(analytics.DefaultRange), "time range: 1h, 24h, 7d or 30d")
	return cmd
}
