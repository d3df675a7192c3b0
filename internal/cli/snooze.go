package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/config"
	"github.com/ramitsuri/chores-client-sub000/internal/wire"
)

// SnoozeCmd returns the snooze command
func SnoozeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snooze [assignment-id]",
		Short: "Push an assignment's reminder to later",
		Long: `Move the assignment's reminder to a later show-at time without changing
its progress status. By default the reminder moves a few hours out; with
--day it moves to tomorrow morning. Both presets are configurable in
~/.chores/config.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]
			day, _ := cmd.Flags().GetBool("day")

			cfg := wire.Config()
			now := time.Now()
			showAt := snoozeTarget(cfg, now, day)

			if err := wire.AssignmentService().Snooze(ctx, id, showAt.UnixMilli()); err != nil {
				return fmt.Errorf("failed to snooze: %w", err)
			}

			fmt.Printf("✓ Snoozed %s until %s\n", id, showAt.Format("Mon Jan 2 15:04"))
			return nil
		},
	}

	cmd.Flags().Bool("day", false, "Snooze to tomorrow morning instead of a few hours")

	return cmd
}

// snoozeTarget computes the new show-at time for a snooze in the configured
// time zone (local when unset).
func snoozeTarget(cfg *config.Config, now time.Time, day bool) time.Time {
	loc := now.Location()
	if cfg.TimeZone != "" {
		if tz, err := time.LoadLocation(cfg.TimeZone); err == nil {
			loc = tz
		}
	}
	now = now.In(loc)

	if !day {
		return now.Add(time.Duration(cfg.SnoozeHours) * time.Hour)
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), cfg.SnoozeDayHr, 0, 0, 0, loc)
}
