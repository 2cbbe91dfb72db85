package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keepFetchEvents is how many fetch events reset --all leaves in place.
const keepFetchEvents = 0

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved explorer session",
	Long:  "Clear the saved selection, tab and filters so the next run starts fresh. With --all the fetch history is deleted too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if err := d.store.SessionRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")

		if all {
			if err := d.store.EventRepo().PruneFetches(ctx, keepFetchEvents); err != nil {
				return fmt.Errorf("prune fetch events: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fetch history deleted.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete the recorded fetch history")
}
