package cmd

import (
	"github.com/danielolaszy/fetchissues/internal/registry"
	"github.com/danielolaszy/fetchissues/internal/report"
	"github.com/spf13/cobra"
)

// trackersCmd lists the configured trackers in report order.
var trackersCmd = &cobra.Command{
	Use:   "trackers",
	Short: "List the configured trackers",
	Long: `List the trackers a report is built from, in the order they appear in
the report (sorted by project name).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trackers, err := loadTrackers(registryPath)
		if err != nil {
			return err
		}
		return report.PrintTrackers(cmd.OutOrStdout(), registry.Sorted(trackers))
	},
}
