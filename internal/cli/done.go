package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/wire"
)

// DoneCmd returns the done command
func DoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [assignment-id]",
		Short: "Mark an assignment as done",
		Long: `Record a local completion for the assignment, flag it for upload on the
next sync, and cancel its reminder alarm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]

			if err := wire.AssignmentService().MarkDone(ctx, id); err != nil {
				return fmt.Errorf("failed to mark done: %w", err)
			}

			fmt.Printf("✓ Marked %s as done\n", id)
			fmt.Println("  Will upload on next sync")
			return nil
		},
	}
}

// WontDoCmd returns the wontdo command
func WontDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wontdo [assignment-id]",
		Short: "Mark an assignment as won't do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]

			if err := wire.AssignmentService().MarkWontDo(ctx, id); err != nil {
				return fmt.Errorf("failed to mark won't do: %w", err)
			}

			fmt.Printf("✓ Marked %s as won't do\n", id)
			fmt.Println("  Will upload on next sync")
			return nil
		},
	}
}
