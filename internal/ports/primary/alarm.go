// Package primary defines the primary ports (driving interfaces) for the application.
// These are the interfaces through which external actors drive the application.
package primary

import (
	"context"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// AlarmHandler schedules and cancels reminder alarms for individual
// assignments. It is the only consumer of the reminder association store;
// the scheduler and user-action handlers never touch slots directly.
type AlarmHandler interface {
	// Schedule resolves or creates a slot for the assignment's show-at time
	// and arms the platform timer keyed by that slot. Scheduling the same
	// assignment twice is idempotent at the platform level.
	Schedule(ctx context.Context, assignmentID string, showAtMillis int64) error

	// Cancel removes the assignment's association. When the owning slot
	// becomes unreferenced the platform timer and any shown notification
	// for that slot are cancelled too.
	Cancel(ctx context.Context, assignmentID string) error

	// Reschedule moves the assignment's reminder to a new show-at time.
	// The old slot's platform timer is cancelled only when no other
	// assignment still reminds at the old time.
	Reschedule(ctx context.Context, assignmentID string, newShowAtMillis int64) error

	// GetExisting returns the assignment's current slot resolution, or nil
	// when no reminder is set.
	GetExisting(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error)
}
