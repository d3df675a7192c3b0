package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/wire"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached task assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			memberID, _ := cmd.Flags().GetString("member")
			status, _ := cmd.Flags().GetString("status")
			mine, _ := cmd.Flags().GetBool("mine")
			all, _ := cmd.Flags().GetBool("all")

			if mine {
				memberID = wire.Config().MemberID
			}
			filters := primary.AssignmentFilters{
				MemberID: memberID,
				Status:   models.ProgressStatus(status),
			}
			if !all && status == "" {
				filters.Status = models.ProgressStatusTodo
			}

			assignments, err := wire.AssignmentService().ListAssignments(ctx, filters)
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			if len(assignments) == 0 {
				fmt.Println("No assignments found.")
				return nil
			}

			fmt.Printf("Found %d assignment(s):\n\n", len(assignments))
			for _, a := range assignments {
				fmt.Printf("%s %s: %s [%s]\n", statusIcon(a.ProgressStatus), a.ID, a.TaskName, a.ProgressStatus)
				fmt.Printf("   Due: %s\n", formatMillis(a.DueDateTime))
				fmt.Printf("   Member: %s\n", a.MemberID)
				if a.RepeatUnit != models.RepeatUnitNone {
					fmt.Printf("   Repeats: %s\n", a.RepeatUnit)
				}
				if a.ShouldUpload {
					fmt.Printf("   %s\n", color.YellowString("pending upload"))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().String("member", "", "Filter by member id")
	cmd.Flags().String("status", "", "Filter by status (TODO, DONE, WONT_DO)")
	cmd.Flags().Bool("mine", false, "Only the logged-in member's assignments")
	cmd.Flags().Bool("all", false, "Include completed assignments")

	return cmd
}

func statusIcon(status models.ProgressStatus) string {
	switch status {
	case models.ProgressStatusTodo:
		return color.New(color.FgYellow).Sprint("○")
	case models.ProgressStatusDone:
		return color.New(color.FgGreen).Sprint("✓")
	case models.ProgressStatusWontDo:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return "?"
	}
}

func formatMillis(epochMillis int64) string {
	return time.UnixMilli(epochMillis).Local().Format("Mon Jan 2 15:04")
}
