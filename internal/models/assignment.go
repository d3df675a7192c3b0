// Package models contains domain types for the chores client.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import "time"

// ProgressStatus is the lifecycle state of a task assignment.
type ProgressStatus string

// Progress status constants. UNKNOWN covers assignments whose state the
// server reported but this client cannot interpret; the scheduler treats it
// like a completed assignment.
const (
	ProgressStatusUnknown ProgressStatus = "UNKNOWN"
	ProgressStatusTodo    ProgressStatus = "TODO"
	ProgressStatusDone    ProgressStatus = "DONE"
	ProgressStatusWontDo  ProgressStatus = "WONT_DO"
)

// Terminal reports whether the status ends the assignment's local lifecycle.
func (s ProgressStatus) Terminal() bool {
	return s == ProgressStatusDone || s == ProgressStatusWontDo
}

// RepeatUnit describes how a task recurs.
type RepeatUnit string

// Repeat unit constants. ON_COMPLETE tasks have no fixed due time and are
// never proactively reminded.
const (
	RepeatUnitNone       RepeatUnit = "NONE"
	RepeatUnitHour       RepeatUnit = "HOUR"
	RepeatUnitDay        RepeatUnit = "DAY"
	RepeatUnitWeek       RepeatUnit = "WEEK"
	RepeatUnitMonth      RepeatUnit = "MONTH"
	RepeatUnitYear       RepeatUnit = "YEAR"
	RepeatUnitOnComplete RepeatUnit = "ON_COMPLETE"
)

// TaskAssignment is one occurrence of a task assigned to a household member.
// Rows are created by sync fetch, mutated locally on done/snooze/won't-do,
// and deleted once the server confirms upload of a terminal state.
type TaskAssignment struct {
	ID                 string
	TaskID             string
	TaskName           string
	MemberID           string
	DueDateTime        int64 // epoch millis
	RepeatUnit         RepeatUnit
	ProgressStatus     ProgressStatus
	ProgressStatusDate int64 // epoch millis
	ShouldUpload       bool
	CreatedDate        int64 // epoch millis
}

// ReminderAssignment is the resolved join of an assignment to its reminder
// slot. It is derived, never stored.
type ReminderAssignment struct {
	AssignmentID string
	BucketTime   int64
	SlotID       int64
}

// BucketTime truncates an epoch-millis due time to the minute. All
// assignments falling in the same minute share one reminder slot, which is
// what keeps a single platform alarm per due time.
func BucketTime(epochMillis int64) int64 {
	const minuteMillis = int64(time.Minute / time.Millisecond)
	return epochMillis - epochMillis%minuteMillis
}
