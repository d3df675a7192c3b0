package primary

import "context"

// ReminderScheduler recomputes desired alarm state from the full local
// cache. Running it twice in a row with no state change is a no-op at the
// platform level.
type ReminderScheduler interface {
	// AddReminders scans all cached assignments within the look-back window
	// and schedules, leaves alone, or cancels each one's alarm. A second
	// invocation while one is in flight is dropped, not queued.
	AddReminders(ctx context.Context) error
}
