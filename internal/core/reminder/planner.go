// Package reminder contains the pure scheduling policy for task reminders.
// Planner functions evaluate desired alarm state without side effects; all
// input data is pre-fetched by the caller.
package reminder

import (
	"time"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// DefaultLookbackMillis bounds how far past an assignment's due time it is
// still considered for reminding. Assignments older than one week are never
// reminded, even if still TODO.
const DefaultLookbackMillis = int64(7 * 24 * time.Hour / time.Millisecond)

// Action is the planned operation for one assignment's alarm.
type Action int

const (
	// ActionNone leaves the assignment's alarm state untouched.
	ActionNone Action = iota
	// ActionSchedule arms (or re-arms) the assignment's alarm.
	ActionSchedule
	// ActionCancel removes the assignment's alarm if one is set.
	ActionCancel
)

// AssignmentInput is the subset of a cached assignment the planner needs.
type AssignmentInput struct {
	ID             string
	MemberID       string
	DueDateTime    int64 // epoch millis
	RepeatUnit     models.RepeatUnit
	ProgressStatus models.ProgressStatus
}

// PlanInput contains the inputs for one full scheduling pass.
type PlanInput struct {
	Assignments      []AssignmentInput
	LoggedInMemberID string
	NowMillis        int64
	LookbackMillis   int64 // 0 means DefaultLookbackMillis
}

// Decision is the planned action for one assignment.
type Decision struct {
	AssignmentID string
	Action       Action
	ShowAtMillis int64 // set only for ActionSchedule
}

// Plan partitions the cached assignments into alarm actions.
// Rules:
//   - DONE, WONT_DO, or UNKNOWN status cancels the alarm. This covers
//     remote-driven completion, e.g. another member finished a shared task.
//   - TODO assignments owned by another member cancel too: the association
//     is removed when an assignment is reassigned to a different owner.
//   - TODO assignments owned by the logged-in member are scheduled at their
//     due time, or immediately when already overdue within the look-back
//     window.
//   - ON_COMPLETE tasks are never scheduled: there is no fixed due time to
//     remind against.
//   - Assignments due before the look-back window are left untouched.
func Plan(input PlanInput) []Decision {
	lookback := input.LookbackMillis
	if lookback == 0 {
		lookback = DefaultLookbackMillis
	}
	horizon := input.NowMillis - lookback

	var decisions []Decision
	for _, a := range input.Assignments {
		if a.DueDateTime < horizon {
			continue
		}

		switch {
		case a.ProgressStatus != models.ProgressStatusTodo:
			decisions = append(decisions, Decision{
				AssignmentID: a.ID,
				Action:       ActionCancel,
			})

		case a.MemberID != input.LoggedInMemberID:
			decisions = append(decisions, Decision{
				AssignmentID: a.ID,
				Action:       ActionCancel,
			})

		case a.RepeatUnit == models.RepeatUnitOnComplete:
			decisions = append(decisions, Decision{
				AssignmentID: a.ID,
				Action:       ActionNone,
			})

		default:
			showAt := a.DueDateTime
			if showAt <= input.NowMillis {
				// Overdue but still inside the window: remind right away.
				showAt = input.NowMillis
			}
			decisions = append(decisions, Decision{
				AssignmentID: a.ID,
				Action:       ActionSchedule,
				ShowAtMillis: showAt,
			})
		}
	}

	return decisions
}
