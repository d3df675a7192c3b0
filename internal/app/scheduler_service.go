package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ramitsuri/chores-client-sub000/internal/core/reminder"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// SchedulerServiceImpl implements the ReminderScheduler interface: the
// periodic policy engine that recomputes desired alarm state from the full
// local cache.
type SchedulerServiceImpl struct {
	assignmentRepo secondary.TaskAssignmentRepository
	alarms         primary.AlarmHandler
	prefs          secondary.Preferences
	logger         *slog.Logger

	// now is swappable for tests.
	now func() time.Time

	// running serializes whole scheduler runs. A second trigger while one
	// is active is dropped, not deferred; the next periodic tick restores
	// correctness. The flag is in-memory only and resets on process start.
	running atomic.Bool
}

// NewSchedulerService creates a new SchedulerService with injected dependencies.
func NewSchedulerService(
	assignmentRepo secondary.TaskAssignmentRepository,
	alarms primary.AlarmHandler,
	prefs secondary.Preferences,
	logger *slog.Logger,
) *SchedulerServiceImpl {
	return &SchedulerServiceImpl{
		assignmentRepo: assignmentRepo,
		alarms:         alarms,
		prefs:          prefs,
		logger:         logger,
		now:            time.Now,
	}
}

// AddReminders scans cached assignments within the look-back window and
// schedules or cancels each one's alarm per the planner. Per-assignment
// failures are logged and self-heal on the next pass; only a failure to load
// the cache is returned.
func (s *SchedulerServiceImpl) AddReminders(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("reminder scan already running, dropping trigger")
		return nil
	}
	defer s.running.Store(false)

	nowMillis := s.now().UnixMilli()
	horizon := nowMillis - reminder.DefaultLookbackMillis

	assignments, err := s.assignmentRepo.List(ctx, horizon)
	if err != nil {
		return fmt.Errorf("failed to load assignments for scan: %w", err)
	}

	inputs := make([]reminder.AssignmentInput, len(assignments))
	for i, a := range assignments {
		inputs[i] = reminder.AssignmentInput{
			ID:             a.ID,
			MemberID:       a.MemberID,
			DueDateTime:    a.DueDateTime,
			RepeatUnit:     a.RepeatUnit,
			ProgressStatus: a.ProgressStatus,
		}
	}

	decisions := reminder.Plan(reminder.PlanInput{
		Assignments:      inputs,
		LoggedInMemberID: s.prefs.LoggedInMemberID(),
		NowMillis:        nowMillis,
	})

	scheduled, cancelled := 0, 0
	for _, d := range decisions {
		switch d.Action {
		case reminder.ActionSchedule:
			if err := s.alarms.Schedule(ctx, d.AssignmentID, d.ShowAtMillis); err != nil {
				s.logger.Warn("failed to schedule reminder", "assignment", d.AssignmentID, "error", err)
				continue
			}
			scheduled++
		case reminder.ActionCancel:
			if err := s.alarms.Cancel(ctx, d.AssignmentID); err != nil {
				s.logger.Warn("failed to cancel reminder", "assignment", d.AssignmentID, "error", err)
				continue
			}
			cancelled++
		}
	}

	s.logger.Info("reminder scan complete", "scanned", len(assignments), "scheduled", scheduled, "cancelled", cancelled)
	return nil
}

// Ensure SchedulerServiceImpl implements the interface
var _ primary.ReminderScheduler = (*SchedulerServiceImpl)(nil)
