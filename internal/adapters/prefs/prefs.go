// Package prefs adapts the stored config file to the preferences port.
package prefs

import (
	"github.com/ramitsuri/chores-client-sub000/internal/config"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// ConfigPreferences implements secondary.Preferences over the loaded config.
type ConfigPreferences struct {
	cfg *config.Config
}

// NewConfigPreferences creates preferences backed by the given config.
func NewConfigPreferences(cfg *config.Config) *ConfigPreferences {
	return &ConfigPreferences{cfg: cfg}
}

// LoggedInMemberID returns the member this device is signed in as.
func (p *ConfigPreferences) LoggedInMemberID() string {
	if p.cfg == nil {
		return ""
	}
	return p.cfg.MemberID
}

// Ensure ConfigPreferences implements the interface
var _ secondary.Preferences = (*ConfigPreferences)(nil)
