// Package app contains the application services implementing the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// AlarmServiceImpl implements the AlarmHandler interface. It owns the only
// path from assignments to the association store and the platform alarm
// facility.
type AlarmServiceImpl struct {
	reminderRepo   secondary.ReminderAssignmentRepository
	assignmentRepo secondary.TaskAssignmentRepository
	platform       secondary.AlarmPlatform
	logger         *slog.Logger
}

// NewAlarmService creates a new AlarmService with injected dependencies.
func NewAlarmService(
	reminderRepo secondary.ReminderAssignmentRepository,
	assignmentRepo secondary.TaskAssignmentRepository,
	platform secondary.AlarmPlatform,
	logger *slog.Logger,
) *AlarmServiceImpl {
	return &AlarmServiceImpl{
		reminderRepo:   reminderRepo,
		assignmentRepo: assignmentRepo,
		platform:       platform,
		logger:         logger,
	}
}

// Schedule resolves or creates a slot for the show-at time and arms the
// platform timer keyed by it.
func (s *AlarmServiceImpl) Schedule(ctx context.Context, assignmentID string, showAtMillis int64) error {
	return s.arm(ctx, assignmentID, showAtMillis)
}

// Reschedule moves the assignment's reminder to a new show-at time.
func (s *AlarmServiceImpl) Reschedule(ctx context.Context, assignmentID string, newShowAtMillis int64) error {
	return s.arm(ctx, assignmentID, newShowAtMillis)
}

// arm is the shared schedule/reschedule path. Association mutations commit
// in their own transaction before the platform call; a platform failure is
// logged and left for the next scheduler pass, which recomputes desired
// state from scratch.
func (s *AlarmServiceImpl) arm(ctx context.Context, assignmentID string, showAtMillis int64) error {
	bucket := models.BucketTime(showAtMillis)

	existing, err := s.reminderRepo.Get(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to resolve existing reminder: %w", err)
	}

	var ra *models.ReminderAssignment
	switch {
	case existing == nil:
		ra, err = s.reminderRepo.Insert(ctx, assignmentID, bucket)
		if err != nil {
			return fmt.Errorf("failed to insert reminder association: %w", err)
		}

	case existing.BucketTime == bucket:
		// Same bucket: the slot stands, only the platform timer is re-armed
		// (idempotent replace).
		ra = existing

	default:
		moved, oldBucketGone, err := s.reminderRepo.UpdateOrInsert(ctx, assignmentID, bucket, existing.BucketTime)
		if err != nil {
			return fmt.Errorf("failed to move reminder association: %w", err)
		}
		if oldBucketGone {
			// The old slot has no referents left; its distinct platform
			// timer must go. When other assignments still share the old
			// bucket the timer stays armed for them.
			s.cancelPlatform(ctx, existing.SlotID)
		}
		ra = moved
	}

	payload := secondary.AlarmPayload{AssignmentID: assignmentID}
	if a, err := s.assignmentRepo.GetByID(ctx, assignmentID); err == nil {
		payload.TaskName = a.TaskName
	}

	if err := s.platform.ScheduleOneShot(ctx, ra.SlotID, ra.BucketTime, payload); err != nil {
		// The association is committed; the next scheduler pass re-arms.
		s.logger.Warn("platform schedule failed", "assignment", assignmentID, "slot", ra.SlotID, "error", err)
	}

	return nil
}

// Cancel removes the assignment's association and disarms the slot's timer
// when it became unreferenced.
func (s *AlarmServiceImpl) Cancel(ctx context.Context, assignmentID string) error {
	slotFreed, slotID, err := s.reminderRepo.Delete(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder association: %w", err)
	}

	if slotFreed {
		s.cancelPlatform(ctx, slotID)
	}

	return nil
}

// GetExisting returns the assignment's current slot resolution.
func (s *AlarmServiceImpl) GetExisting(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error) {
	return s.reminderRepo.Get(ctx, assignmentID)
}

// cancelPlatform disarms a slot's timer and dismisses its notification.
// Platform failures are logged, not propagated.
func (s *AlarmServiceImpl) cancelPlatform(ctx context.Context, slotID int64) {
	err := errors.Join(
		s.platform.Cancel(ctx, slotID),
		s.platform.CancelNotification(ctx, slotID),
	)
	if err != nil {
		s.logger.Warn("platform cancel failed", "slot", slotID, "error", err)
	}
}

// Ensure AlarmServiceImpl implements the interface
var _ primary.AlarmHandler = (*AlarmServiceImpl)(nil)
