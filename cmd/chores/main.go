package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/cli"
	"github.com/ramitsuri/chores-client-sub000/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "chores",
		Short:   "chores - household chore assignments on the command line",
		Version: version.String(),
		Long: `chores is a client for a shared household-chore server. It caches your
task assignments locally, keeps them in sync, and schedules deduplicated
reminders for upcoming due times.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.DoneCmd())
	rootCmd.AddCommand(cli.WontDoCmd())
	rootCmd.AddCommand(cli.SnoozeCmd())
	rootCmd.AddCommand(cli.RemindersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
