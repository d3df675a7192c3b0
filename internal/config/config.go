package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat chores-client configuration
type Config struct {
	Version     string `json:"version"`
	ServerURL   string `json:"server_url"`                // base URL of the chores server
	APIKey      string `json:"api_key,omitempty"`         // bearer token for the server API
	MemberID    string `json:"member_id,omitempty"`       // logged-in household member
	DeviceID    string `json:"device_id,omitempty"`       // generated once on init
	TimeZone    string `json:"time_zone,omitempty"`       // IANA name, empty means local
	SnoozeHours int    `json:"snooze_hours,omitempty"`    // hours for `snooze` default
	SnoozeDayHr int    `json:"snooze_day_hour,omitempty"` // hour of day for `snooze --day`
}

// Defaults applied when a field is unset in the stored file.
const (
	DefaultSnoozeHours = 6
	DefaultSnoozeDayHr = 8
)

// LoadConfig reads .chores/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".chores", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SnoozeHours == 0 {
		cfg.SnoozeHours = DefaultSnoozeHours
	}
	if cfg.SnoozeDayHr == 0 {
		cfg.SnoozeDayHr = DefaultSnoozeDayHr
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	choresDir := filepath.Join(dir, ".chores")
	if err := os.MkdirAll(choresDir, 0755); err != nil {
		return fmt.Errorf("failed to create .chores dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(choresDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfigDir returns the directory holding .chores/config.json.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}
