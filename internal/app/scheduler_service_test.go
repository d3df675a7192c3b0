package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

func fixedNow() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func TestAddReminders_Partition(t *testing.T) {
	repo := newMockAssignmentRepo()
	alarms := newMockAlarmHandler()
	svc := NewSchedulerService(repo, alarms, &mockPrefs{memberID: "member-1"}, testLogger())
	svc.now = fixedNow

	now := fixedNow().UnixMilli()
	hour := int64(time.Hour / time.Millisecond)

	repo.add(&models.TaskAssignment{ID: "done", MemberID: "member-1", DueDateTime: now + hour, ProgressStatus: models.ProgressStatusDone})
	repo.add(&models.TaskAssignment{ID: "overdue-owned", MemberID: "member-1", DueDateTime: now - hour, ProgressStatus: models.ProgressStatusTodo})
	repo.add(&models.TaskAssignment{ID: "future-owned", MemberID: "member-1", DueDateTime: now + hour, ProgressStatus: models.ProgressStatusTodo})
	repo.add(&models.TaskAssignment{ID: "other-member", MemberID: "member-2", DueDateTime: now + hour, ProgressStatus: models.ProgressStatusTodo})
	repo.add(&models.TaskAssignment{ID: "on-complete", MemberID: "member-1", DueDateTime: now + hour, RepeatUnit: models.RepeatUnitOnComplete, ProgressStatus: models.ProgressStatusTodo})

	require.NoError(t, svc.AddReminders(context.Background()))

	assert.ElementsMatch(t, []string{"overdue-owned", "future-owned"}, alarms.scheduleCalls)
	assert.ElementsMatch(t, []string{"done", "other-member"}, alarms.cancelCalls)
}

func TestAddReminders_Idempotent(t *testing.T) {
	repo := newMockAssignmentRepo()
	alarms := newMockAlarmHandler()
	svc := NewSchedulerService(repo, alarms, &mockPrefs{memberID: "member-1"}, testLogger())
	svc.now = fixedNow

	now := fixedNow().UnixMilli()
	repo.add(&models.TaskAssignment{ID: "a", MemberID: "member-1", DueDateTime: now + 1000, ProgressStatus: models.ProgressStatusTodo})

	require.NoError(t, svc.AddReminders(context.Background()))
	require.NoError(t, svc.AddReminders(context.Background()))

	// Both passes schedule the same assignment; the platform-level replace
	// makes the second one a no-op downstream.
	assert.Equal(t, []string{"a", "a"}, alarms.scheduleCalls)
}

func TestAddReminders_DropsConcurrentTrigger(t *testing.T) {
	repo := newMockAssignmentRepo()
	alarms := newMockAlarmHandler()
	svc := NewSchedulerService(repo, alarms, &mockPrefs{memberID: "member-1"}, testLogger())
	svc.now = fixedNow

	now := fixedNow().UnixMilli()
	repo.add(&models.TaskAssignment{ID: "a", MemberID: "member-1", DueDateTime: now + 1000, ProgressStatus: models.ProgressStatusTodo})

	release := make(chan struct{})
	alarms.blockOn = release

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.AddReminders(context.Background())
	}()

	// Wait until the first run is inside the blocking Schedule call.
	require.Eventually(t, func() bool {
		return svc.running.Load()
	}, time.Second, time.Millisecond)

	// The second trigger is dropped without doing any scheduling work.
	require.NoError(t, svc.AddReminders(context.Background()))
	assert.Equal(t, 0, alarms.callCount())

	close(release)
	wg.Wait()
	assert.Equal(t, 1, alarms.callCount())

	// After the first run finishes the guard is released again.
	require.NoError(t, svc.AddReminders(context.Background()))
	assert.Equal(t, 2, alarms.callCount())
}

func TestAddReminders_ListFailureResetsGuard(t *testing.T) {
	repo := newMockAssignmentRepo()
	repo.listErr = assert.AnError
	alarms := newMockAlarmHandler()
	svc := NewSchedulerService(repo, alarms, &mockPrefs{memberID: "member-1"}, testLogger())
	svc.now = fixedNow

	require.Error(t, svc.AddReminders(context.Background()))

	// The running flag must reset even on error.
	repo.listErr = nil
	require.NoError(t, svc.AddReminders(context.Background()))
}
