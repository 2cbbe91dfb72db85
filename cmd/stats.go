package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show data service call statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		stats, err := d.store.EventRepo().FetchStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query fetch stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No fetches recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %8s  %8s  %10s\n", "Operation", "Calls", "Failed", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 56))

		var calls, failures int
		for _, st := range stats {
			fmt.Fprintf(out, "%-24s  %8d  %8d  %10.1f\n", st.Operation, st.Calls, st.Failures, st.AvgLatencyMs)
			calls += st.Calls
			failures += st.Failures
		}

		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%-24s  %8d  %8d\n", "TOTAL", calls, failures)
		return nil
	},
}
