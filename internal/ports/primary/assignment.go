package primary

import (
	"context"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// AssignmentFilters contains filter options for listing cached assignments.
type AssignmentFilters struct {
	MemberID string
	Status   models.ProgressStatus
	DueAfter int64 // epoch millis, 0 for no bound
}

// AssignmentService exposes the user-action surface: the operations a
// member performs on a single assignment, bypassing the full scheduler scan.
type AssignmentService interface {
	// GetAssignment retrieves one cached assignment.
	GetAssignment(ctx context.Context, id string) (*models.TaskAssignment, error)

	// ListAssignments lists cached assignments matching the filters.
	ListAssignments(ctx context.Context, filters AssignmentFilters) ([]*models.TaskAssignment, error)

	// MarkDone records a local completion, flags it for upload, and cancels
	// the assignment's alarm.
	MarkDone(ctx context.Context, id string) error

	// MarkWontDo records a local won't-do, flags it for upload, and cancels
	// the assignment's alarm.
	MarkWontDo(ctx context.Context, id string) error

	// Snooze moves the assignment's reminder to showAtMillis without
	// changing its progress status.
	Snooze(ctx context.Context, id string, showAtMillis int64) error
}
