package secondary

import "context"

// AlarmPayload carries what the platform needs to render a reminder when a
// one-shot timer fires.
type AlarmPayload struct {
	AssignmentID string
	TaskName     string
}

// AlarmPlatform defines the secondary port for the platform alarm and
// notification facility. All operations are assumed idempotent:
// ScheduleOneShot replaces any timer already keyed by the slot id, and
// cancelling an unknown slot is a no-op.
type AlarmPlatform interface {
	// ScheduleOneShot arms (or re-arms) the timer keyed by slotID to fire
	// at the given epoch-millis instant.
	ScheduleOneShot(ctx context.Context, slotID int64, atMillis int64, payload AlarmPayload) error

	// Cancel disarms the timer keyed by slotID.
	Cancel(ctx context.Context, slotID int64) error

	// CancelNotification dismisses a currently shown notification for the
	// slot, if any.
	CancelNotification(ctx context.Context, slotID int64) error
}
