package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/wire"
)

// RemindersCmd returns the reminders command
func RemindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Show currently scheduled reminders",
		Long: `Show the reminder slots currently armed for the logged-in member's TODO
assignments, grouped by shared show-at time. Useful for checking what the
scheduler decided on its last pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			assignments, err := wire.AssignmentService().ListAssignments(ctx, primary.AssignmentFilters{
				Status: models.ProgressStatusTodo,
			})
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			// Group armed reminders by slot; assignments sharing a bucket
			// share one alarm.
			type slotGroup struct {
				bucketTime int64
				names      []string
			}
			groups := make(map[int64]*slotGroup)
			for _, a := range assignments {
				ra, err := wire.AlarmHandler().GetExisting(ctx, a.ID)
				if err != nil {
					return fmt.Errorf("failed to resolve reminder for %s: %w", a.ID, err)
				}
				if ra == nil {
					continue
				}
				g, ok := groups[ra.SlotID]
				if !ok {
					g = &slotGroup{bucketTime: ra.BucketTime}
					groups[ra.SlotID] = g
				}
				g.names = append(g.names, fmt.Sprintf("%s (%s)", a.TaskName, a.ID))
			}

			if len(groups) == 0 {
				fmt.Println("No reminders scheduled.")
				return nil
			}

			slotIDs := make([]int64, 0, len(groups))
			for id := range groups {
				slotIDs = append(slotIDs, id)
			}
			sort.Slice(slotIDs, func(i, j int) bool {
				return groups[slotIDs[i]].bucketTime < groups[slotIDs[j]].bucketTime
			})

			fmt.Printf("%d reminder slot(s) armed:\n\n", len(groups))
			for _, id := range slotIDs {
				g := groups[id]
				fmt.Printf("Slot %d at %s:\n", id, formatMillis(g.bucketTime))
				for _, name := range g.names {
					fmt.Printf("   %s\n", name)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
