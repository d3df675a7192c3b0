package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ramitsuri/chores-client-sub000/internal/config"
	"github.com/ramitsuri/chores-client-sub000/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the chores client",
		Long:  `Initialize the local database at ~/.chores/chores.db and write the client configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server")
			apiKey, _ := cmd.Flags().GetString("api-key")
			memberID, _ := cmd.Flags().GetString("member")
			timeZone, _ := cmd.Flags().GetString("timezone")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing chores database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			configDir, err := config.DefaultConfigDir()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			// Keep the existing device id when re-running init, so the
			// server keeps recognizing this client.
			deviceID := uuid.New().String()
			if existing, err := config.LoadConfig(configDir); err == nil && existing.DeviceID != "" {
				deviceID = existing.DeviceID
			}

			cfg := &config.Config{
				Version:   "1",
				ServerURL: serverURL,
				APIKey:    apiKey,
				MemberID:  memberID,
				DeviceID:  deviceID,
				TimeZone:  timeZone,
			}
			if err := config.SaveConfig(configDir, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println("✓ Config written to ~/.chores/config.json")
			fmt.Printf("  Device ID: %s\n", deviceID)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  chores sync")
			fmt.Println("  chores list --mine")

			return nil
		},
	}

	cmd.Flags().String("server", "", "Base URL of the chores server")
	cmd.Flags().String("api-key", "", "Bearer token for the server API")
	cmd.Flags().String("member", "", "Logged-in household member id")
	cmd.Flags().String("timezone", "", "IANA time zone name (defaults to local)")
	cmd.MarkFlagRequired("server")
	cmd.MarkFlagRequired("member")

	return cmd
}
