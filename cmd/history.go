package cmd

import (
	"fmt"

	"github.com/danielolaszy/fetchissues/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd prints the ledger of generated reports.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the reports recorded in the history ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := history.Load(historyPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, id := range ledger.Entries() {
			if _, err := fmt.Fprintln(out, id); err != nil {
				return err
			}
		}
		return nil
	},
}
