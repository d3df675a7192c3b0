// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// ReminderAssignmentRepository defines the secondary port for the reminder
// association store. It owns the time_slot_associations and
// assignment_time_associations tables exclusively; no other component writes
// them. Every method runs as a single atomic transaction.
type ReminderAssignmentRepository interface {
	// Insert associates the assignment with the bucket time, creating a slot
	// for the bucket if none exists yet. Reassigning an assignment to a new
	// bucket via Insert is idempotent and never errors. Returns the resolved
	// reminder assignment; a nil result with a non-nil error indicates a
	// referential bug, not a normal miss.
	Insert(ctx context.Context, assignmentID string, bucketTime int64) (*models.ReminderAssignment, error)

	// Get resolves the assignment's bucket and the bucket's slot.
	// Returns (nil, nil) when either side of the join is missing: that is a
	// valid steady state meaning no reminder is currently set.
	Get(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error)

	// UpdateOrInsert moves the assignment from oldBucketTime to
	// newBucketTime. When no other assignment still references the old
	// bucket, its slot row is deleted and oldBucketGone is true — the caller
	// must then cancel the platform alarm scheduled under the freed slot.
	// The new bucket's slot is created only if none exists (dedup).
	UpdateOrInsert(ctx context.Context, assignmentID string, newBucketTime, oldBucketTime int64) (ra *models.ReminderAssignment, oldBucketGone bool, err error)

	// Delete removes the assignment's association. When the owning bucket
	// becomes unreferenced its slot row is deleted and slotFreed is true
	// with freedSlotID holding the slot whose platform alarm must be
	// cancelled.
	Delete(ctx context.Context, assignmentID string) (slotFreed bool, freedSlotID int64, err error)

	// AssignmentsForBucket lists assignment ids currently associated with
	// the bucket time. Used by tests and the reminders debug view.
	AssignmentsForBucket(ctx context.Context, bucketTime int64) ([]string, error)
}

// TaskAssignmentRepository defines the secondary port for the local
// assignment cache.
type TaskAssignmentRepository interface {
	// GetByID retrieves a cached assignment.
	GetByID(ctx context.Context, id string) (*models.TaskAssignment, error)

	// List retrieves all cached assignments with due time at or after
	// dueAfter (epoch millis). Pass 0 for no lower bound.
	List(ctx context.Context, dueAfter int64) ([]*models.TaskAssignment, error)

	// ListPendingUpload retrieves assignments flagged should_upload.
	ListPendingUpload(ctx context.Context) ([]*models.TaskAssignment, error)

	// DeleteByIDs removes the given assignments from the cache. Used after
	// the server confirms it durably received them.
	DeleteByIDs(ctx context.Context, ids []string) error

	// ReplaceSynced replaces the synced portion of the cache with the
	// fetched set in one transaction: rows with should_upload = 0 are
	// dropped, then fetched rows are inserted unless a pending local row
	// with the same id survives (pending local state is never clobbered).
	ReplaceSynced(ctx context.Context, fetched []*models.TaskAssignment) error

	// UpdateStatus records a local status change and marks the row for
	// upload.
	UpdateStatus(ctx context.Context, id string, status models.ProgressStatus, statusDateMillis int64) error
}

// NotFoundError is returned by GetByID when the assignment is not cached.
// Declared here so services don't depend on the sqlite adapter.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "task assignment " + e.ID + " not found"
}
