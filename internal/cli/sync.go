package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync assignments with the server and refresh reminders",
		Long: `Run one sync cycle against the chores server: upload locally completed
assignments, fetch the current assignment set, then rescan the cache and
schedule or cancel reminder alarms to match.

Run this periodically (e.g. from cron) to keep reminders current.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			skipRemote, _ := cmd.Flags().GetBool("local-only")

			if !skipRemote {
				if err := wire.SyncService().Refresh(ctx); err != nil {
					return fmt.Errorf("failed to sync with server: %w", err)
				}
				fmt.Println("✓ Synced with server")
			}

			if err := wire.Scheduler().AddReminders(ctx); err != nil {
				return fmt.Errorf("failed to refresh reminders: %w", err)
			}
			fmt.Println("✓ Reminders refreshed")

			return nil
		},
	}

	cmd.Flags().Bool("local-only", false, "Skip the server round-trip, only rescan reminders")

	return cmd
}
