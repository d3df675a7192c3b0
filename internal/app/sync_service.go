package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// SyncServiceImpl implements the SyncService interface: the reconciliation
// protocol between the local assignment cache and the remote server.
type SyncServiceImpl struct {
	assignmentRepo secondary.TaskAssignmentRepository
	api            secondary.TaskAssignmentsAPI
	logger         *slog.Logger
}

// NewSyncService creates a new SyncService with injected dependencies.
func NewSyncService(
	assignmentRepo secondary.TaskAssignmentRepository,
	api secondary.TaskAssignmentsAPI,
	logger *slog.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		assignmentRepo: assignmentRepo,
		api:            api,
		logger:         logger,
	}
}

// Refresh runs one reconciliation cycle: upload pending local mutations,
// delete the rows the server confirmed, then fetch and merge the remote set.
// The ordering guarantees an assignment is never simultaneously pending
// upload and deleted by the fetch merge: anything uploadable is reconciled
// before the merge runs, and the merge itself never touches pending rows.
func (s *SyncServiceImpl) Refresh(ctx context.Context) error {
	// Upload phase. A failure here is recoverable: the rows stay flagged
	// and are retried on the next cycle, and the fetch phase still runs.
	pending, err := s.assignmentRepo.ListPendingUpload(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending uploads: %w", err)
	}

	if len(pending) > 0 {
		confirmed, err := s.api.UpdateTaskAssignments(ctx, pending)
		if err != nil {
			s.logger.Warn("upload phase failed, will retry next refresh", "pending", len(pending), "error", err)
		} else {
			// The confirmed rows are now fully represented server-side and
			// come back via fetch if still relevant.
			if err := s.assignmentRepo.DeleteByIDs(ctx, confirmed); err != nil {
				return fmt.Errorf("failed to delete confirmed uploads: %w", err)
			}
			s.logger.Info("uploaded local changes", "sent", len(pending), "confirmed", len(confirmed))
		}
	}

	// Fetch phase. A failure aborts the whole refresh; nothing is partially
	// applied because the merge is a single transaction.
	fetched, err := s.api.GetTaskAssignments(ctx)
	if err != nil {
		return fmt.Errorf("fetch phase failed: %w", err)
	}

	if err := s.assignmentRepo.ReplaceSynced(ctx, fetched); err != nil {
		return fmt.Errorf("failed to apply fetched assignments: %w", err)
	}

	s.logger.Info("refresh complete", "fetched", len(fetched))
	return nil
}

// Ensure SyncServiceImpl implements the interface
var _ primary.SyncService = (*SyncServiceImpl)(nil)
