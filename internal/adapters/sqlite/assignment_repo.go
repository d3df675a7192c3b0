package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ramitsuri/chores-client-sub000/internal/core/syncplan"
	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// TaskAssignmentRepository implements secondary.TaskAssignmentRepository
// with SQLite.
type TaskAssignmentRepository struct {
	db *sql.DB
}

// NewTaskAssignmentRepository creates a new SQLite task assignment repository.
func NewTaskAssignmentRepository(db *sql.DB) *TaskAssignmentRepository {
	return &TaskAssignmentRepository{db: db}
}

const assignmentSelectCols = "id, task_id, task_name, member_id, due_date_time, repeat_unit, progress_status, progress_status_date, should_upload, created_date"

// scanAssignment scans an assignment row into a TaskAssignment.
func scanAssignment(scanner interface {
	Scan(dest ...any) error
}) (*models.TaskAssignment, error) {
	var (
		a            models.TaskAssignment
		repeatUnit   string
		status       string
		shouldUpload int
	)

	err := scanner.Scan(
		&a.ID, &a.TaskID, &a.TaskName, &a.MemberID, &a.DueDateTime,
		&repeatUnit, &status, &a.ProgressStatusDate, &shouldUpload, &a.CreatedDate,
	)
	if err != nil {
		return nil, err
	}

	a.RepeatUnit = models.RepeatUnit(repeatUnit)
	a.ProgressStatus = models.ProgressStatus(status)
	a.ShouldUpload = shouldUpload != 0

	return &a, nil
}

// insertAssignmentTx writes one assignment row inside a transaction.
func insertAssignmentTx(ctx context.Context, tx *sql.Tx, a *models.TaskAssignment) error {
	shouldUpload := 0
	if a.ShouldUpload {
		shouldUpload = 1
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO task_assignments ("+assignmentSelectCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.TaskID, a.TaskName, a.MemberID, a.DueDateTime,
		string(a.RepeatUnit), string(a.ProgressStatus), a.ProgressStatusDate, shouldUpload, a.CreatedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task assignment %s: %w", a.ID, err)
	}
	return nil
}

// GetByID retrieves a cached assignment by its ID.
func (r *TaskAssignmentRepository) GetByID(ctx context.Context, id string) (*models.TaskAssignment, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+assignmentSelectCols+" FROM task_assignments WHERE id = ?",
		id,
	)

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, &secondary.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignment: %w", err)
	}

	return a, nil
}

// List retrieves cached assignments with due time at or after dueAfter.
func (r *TaskAssignmentRepository) List(ctx context.Context, dueAfter int64) ([]*models.TaskAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assignmentSelectCols+" FROM task_assignments WHERE due_date_time >= ? ORDER BY due_date_time ASC",
		dueAfter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list task assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// ListPendingUpload retrieves assignments flagged for upload.
func (r *TaskAssignmentRepository) ListPendingUpload(ctx context.Context) ([]*models.TaskAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assignmentSelectCols+" FROM task_assignments WHERE should_upload = 1 ORDER BY progress_status_date ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending uploads: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows *sql.Rows) ([]*models.TaskAssignment, error) {
	var assignments []*models.TaskAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// DeleteByIDs removes the given assignments from the cache.
func (r *TaskAssignmentRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := r.db.ExecContext(ctx,
		"DELETE FROM task_assignments WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task assignments: %w", err)
	}
	return nil
}

// ReplaceSynced applies a fetched server snapshot in one transaction. Synced
// rows are dropped and re-inserted from the snapshot; rows with a pending
// local mutation survive untouched and suppress any colliding fetched row.
func (r *TaskAssignmentRepository) ReplaceSynced(ctx context.Context, fetched []*models.TaskAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id, should_upload FROM task_assignments")
	if err != nil {
		return fmt.Errorf("failed to read local rows for merge: %w", err)
	}

	var local []syncplan.LocalRow
	for rows.Next() {
		var (
			row          syncplan.LocalRow
			shouldUpload int
		)
		if err := rows.Scan(&row.ID, &shouldUpload); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan local row for merge: %w", err)
		}
		row.ShouldUpload = shouldUpload != 0
		local = append(local, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to read local rows for merge: %w", err)
	}
	rows.Close()

	fetchedIDs := make([]string, len(fetched))
	fetchedByID := make(map[string]*models.TaskAssignment, len(fetched))
	for i, a := range fetched {
		fetchedIDs[i] = a.ID
		fetchedByID[a.ID] = a
	}

	plan := syncplan.Merge(local, fetchedIDs)

	for _, id := range plan.DeleteIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_assignments WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete synced row %s: %w", id, err)
		}
	}

	for _, id := range plan.InsertIDs {
		if err := insertAssignmentTx(ctx, tx, fetchedByID[id]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace transaction: %w", err)
	}
	return nil
}

// UpdateStatus records a local status change and flags the row for upload.
func (r *TaskAssignmentRepository) UpdateStatus(ctx context.Context, id string, status models.ProgressStatus, statusDateMillis int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE task_assignments SET progress_status = ?, progress_status_date = ?, should_upload = 1 WHERE id = ?",
		string(status), statusDateMillis, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task assignment status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return &secondary.NotFoundError{ID: id}
	}

	return nil
}

// Ensure TaskAssignmentRepository implements the interface
var _ secondary.TaskAssignmentRepository = (*TaskAssignmentRepository)(nil)
