package secondary

// Preferences defines the secondary port for locally stored user settings.
// Read-only from the reminder core's perspective.
type Preferences interface {
	// LoggedInMemberID returns the member this device is signed in as, or
	// empty when signed out.
	LoggedInMemberID() string
}
