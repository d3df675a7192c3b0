package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// AssignmentServiceImpl implements the AssignmentService interface: the
// user-action surface that mutates single assignments without a full
// scheduler scan.
type AssignmentServiceImpl struct {
	assignmentRepo secondary.TaskAssignmentRepository
	alarms         primary.AlarmHandler
	logger         *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewAssignmentService creates a new AssignmentService with injected dependencies.
func NewAssignmentService(
	assignmentRepo secondary.TaskAssignmentRepository,
	alarms primary.AlarmHandler,
	logger *slog.Logger,
) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		alarms:         alarms,
		logger:         logger,
		now:            time.Now,
	}
}

// GetAssignment retrieves one cached assignment.
func (s *AssignmentServiceImpl) GetAssignment(ctx context.Context, id string) (*models.TaskAssignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListAssignments lists cached assignments matching the filters.
func (s *AssignmentServiceImpl) ListAssignments(ctx context.Context, filters primary.AssignmentFilters) ([]*models.TaskAssignment, error) {
	all, err := s.assignmentRepo.List(ctx, filters.DueAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	var result []*models.TaskAssignment
	for _, a := range all {
		if filters.MemberID != "" && a.MemberID != filters.MemberID {
			continue
		}
		if filters.Status != "" && a.ProgressStatus != filters.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// MarkDone records a local completion and cancels the assignment's alarm.
func (s *AssignmentServiceImpl) MarkDone(ctx context.Context, id string) error {
	return s.finish(ctx, id, models.ProgressStatusDone)
}

// MarkWontDo records a local won't-do and cancels the assignment's alarm.
func (s *AssignmentServiceImpl) MarkWontDo(ctx context.Context, id string) error {
	return s.finish(ctx, id, models.ProgressStatusWontDo)
}

func (s *AssignmentServiceImpl) finish(ctx context.Context, id string, status models.ProgressStatus) error {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.ProgressStatus.Terminal() {
		return fmt.Errorf("assignment %s is already %s", id, a.ProgressStatus)
	}

	nowMillis := s.now().UnixMilli()
	if err := s.assignmentRepo.UpdateStatus(ctx, id, status, nowMillis); err != nil {
		return fmt.Errorf("failed to record %s: %w", status, err)
	}

	if err := s.alarms.Cancel(ctx, id); err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}

	s.logger.Info("assignment finished locally", "assignment", id, "status", status)
	return nil
}

// Snooze moves the assignment's reminder without changing its progress
// status; the next sync leaves the assignment itself untouched.
func (s *AssignmentServiceImpl) Snooze(ctx context.Context, id string, showAtMillis int64) error {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.ProgressStatus != models.ProgressStatusTodo {
		return fmt.Errorf("can only snooze TODO assignments (current status: %s)", a.ProgressStatus)
	}

	if err := s.alarms.Reschedule(ctx, id, showAtMillis); err != nil {
		return fmt.Errorf("failed to snooze reminder: %w", err)
	}

	s.logger.Info("assignment snoozed", "assignment", id, "until", time.UnixMilli(showAtMillis))
	return nil
}

// Ensure AssignmentServiceImpl implements the interface
var _ primary.AssignmentService = (*AssignmentServiceImpl)(nil)
