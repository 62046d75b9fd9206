package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/brianly1003/notifyhub/internal/scenario"
	"github.com/spf13/cobra"
)

// listCmd lists the available scenarios.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, s := range scenario.Catalog() {
			fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
		}
		return w.Flush()
	},
}
