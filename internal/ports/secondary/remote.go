package secondary

import (
	"context"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// TaskAssignmentsAPI defines the secondary port for the remote chores
// server. Network failures surface as returned errors (typed by the
// adapter), never as panics across this boundary.
type TaskAssignmentsAPI interface {
	// GetTaskAssignments fetches the full current assignment set for the
	// logged-in member's household.
	GetTaskAssignments(ctx context.Context) ([]*models.TaskAssignment, error)

	// UpdateTaskAssignments uploads locally mutated assignments and returns
	// the ids the server confirms as durably received. A partial
	// confirmation list is valid; unconfirmed assignments stay cached and
	// are retried on the next refresh.
	UpdateTaskAssignments(ctx context.Context, assignments []*models.TaskAssignment) ([]string, error)
}
