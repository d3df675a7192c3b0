// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production. Do not
// hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ramitsuri/chores-client-sub000/internal/db"
	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedAssignment inserts a test task assignment row and returns its ID.
func seedAssignment(t *testing.T, testDB *sql.DB, a *models.TaskAssignment) string {
	t.Helper()

	if a.ID == "" {
		a.ID = "assignment-1"
	}
	if a.TaskID == "" {
		a.TaskID = "task-1"
	}
	if a.MemberID == "" {
		a.MemberID = "member-1"
	}
	if a.RepeatUnit == "" {
		a.RepeatUnit = models.RepeatUnitNone
	}
	if a.ProgressStatus == "" {
		a.ProgressStatus = models.ProgressStatusTodo
	}

	shouldUpload := 0
	if a.ShouldUpload {
		shouldUpload = 1
	}

	_, err := testDB.Exec(
		"INSERT INTO task_assignments (id, task_id, task_name, member_id, due_date_time, repeat_unit, progress_status, progress_status_date, should_upload, created_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.TaskID, a.TaskName, a.MemberID, a.DueDateTime,
		string(a.RepeatUnit), string(a.ProgressStatus), a.ProgressStatusDate, shouldUpload, a.CreatedDate,
	)
	if err != nil {
		t.Fatalf("failed to seed task assignment: %v", err)
	}
	return a.ID
}

// countRows counts rows in a table.
func countRows(t *testing.T, testDB *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}
