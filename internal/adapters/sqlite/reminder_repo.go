// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// ReminderAssignmentRepository implements secondary.ReminderAssignmentRepository
// with SQLite. It is the sole writer of the two association tables; every
// exported method runs as one transaction so the "is the bucket still
// referenced" read and the "delete slot" write can never interleave with
// another mutation.
type ReminderAssignmentRepository struct {
	db *sql.DB
}

// NewReminderAssignmentRepository creates a new SQLite reminder assignment repository.
func NewReminderAssignmentRepository(db *sql.DB) *ReminderAssignmentRepository {
	return &ReminderAssignmentRepository{db: db}
}

// slotForBucket looks up the slot for a bucket time within a transaction.
func slotForBucket(ctx context.Context, tx *sql.Tx, bucketTime int64) (int64, bool, error) {
	var slotID int64
	err := tx.QueryRowContext(ctx,
		"SELECT slot_id FROM time_slot_associations WHERE bucket_time = ?",
		bucketTime,
	).Scan(&slotID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up slot for bucket %d: %w", bucketTime, err)
	}
	return slotID, true, nil
}

// insertSlot creates a slot row for a bucket time. The UNIQUE constraint on
// bucket_time makes a duplicate insert abort the transaction, which is
// intentional: silently replacing the row would orphan the platform alarm
// already scheduled under the old slot id. Callers must check existence
// first via slotForBucket.
func insertSlot(ctx context.Context, tx *sql.Tx, bucketTime int64) (int64, error) {
	result, err := tx.ExecContext(ctx,
		"INSERT INTO time_slot_associations (bucket_time) VALUES (?)",
		bucketTime,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert slot for bucket %d: %w", bucketTime, err)
	}

	slotID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new slot id: %w", err)
	}
	return slotID, nil
}

// deleteSlot removes the slot row for a bucket time.
func deleteSlot(ctx context.Context, tx *sql.Tx, bucketTime int64) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM time_slot_associations WHERE bucket_time = ?",
		bucketTime,
	); err != nil {
		return fmt.Errorf("failed to delete slot for bucket %d: %w", bucketTime, err)
	}
	return nil
}

// upsertAssignment writes the assignment -> bucket mapping. Replace-on-conflict
// is safe here: one assignment maps to exactly one bucket, so replacing the
// row is the reassignment.
func upsertAssignment(ctx context.Context, tx *sql.Tx, assignmentID string, bucketTime int64) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO assignment_time_associations (assignment_id, bucket_time) VALUES (?, ?)",
		assignmentID, bucketTime,
	); err != nil {
		return fmt.Errorf("failed to upsert assignment association %s: %w", assignmentID, err)
	}
	return nil
}

// deleteAssignmentRow removes the assignment -> bucket mapping.
func deleteAssignmentRow(ctx context.Context, tx *sql.Tx, assignmentID string) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM assignment_time_associations WHERE assignment_id = ?",
		assignmentID,
	); err != nil {
		return fmt.Errorf("failed to delete assignment association %s: %w", assignmentID, err)
	}
	return nil
}

// bucketForAssignment looks up the assignment's current bucket.
func bucketForAssignment(ctx context.Context, tx *sql.Tx, assignmentID string) (int64, bool, error) {
	var bucketTime int64
	err := tx.QueryRowContext(ctx,
		"SELECT bucket_time FROM assignment_time_associations WHERE assignment_id = ?",
		assignmentID,
	).Scan(&bucketTime)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up bucket for assignment %s: %w", assignmentID, err)
	}
	return bucketTime, true, nil
}

// countAssignmentsForBucket counts assignments still referencing a bucket.
func countAssignmentsForBucket(ctx context.Context, tx *sql.Tx, bucketTime int64) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignment_time_associations WHERE bucket_time = ?",
		bucketTime,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments for bucket %d: %w", bucketTime, err)
	}
	return count, nil
}

// Insert associates the assignment with the bucket, creating the bucket's
// slot only when no other assignment already reminds at that time.
func (r *ReminderAssignmentRepository) Insert(ctx context.Context, assignmentID string, bucketTime int64) (*models.ReminderAssignment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin insert transaction: %w", err)
	}
	defer tx.Rollback()

	slotID, exists, err := slotForBucket(ctx, tx, bucketTime)
	if err != nil {
		return nil, err
	}
	if !exists {
		slotID, err = insertSlot(ctx, tx, bucketTime)
		if err != nil {
			return nil, err
		}
	}

	if err := upsertAssignment(ctx, tx, assignmentID, bucketTime); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit insert transaction: %w", err)
	}

	return &models.ReminderAssignment{
		AssignmentID: assignmentID,
		BucketTime:   bucketTime,
		SlotID:       slotID,
	}, nil
}

// Get resolves the assignment's slot via the two-table join.
// Returns (nil, nil) when either hop misses.
func (r *ReminderAssignmentRepository) Get(ctx context.Context, assignmentID string) (*models.ReminderAssignment, error) {
	ra := &models.ReminderAssignment{AssignmentID: assignmentID}
	err := r.db.QueryRowContext(ctx,
		`SELECT a.bucket_time, s.slot_id
		 FROM assignment_time_associations a
		 INNER JOIN time_slot_associations s ON s.bucket_time = a.bucket_time
		 WHERE a.assignment_id = ?`,
		assignmentID,
	).Scan(&ra.BucketTime, &ra.SlotID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reminder assignment %s: %w", assignmentID, err)
	}
	return ra, nil
}

// UpdateOrInsert moves the assignment to a new bucket. The old bucket's slot
// is deleted when the moved assignment was its last reference; the returned
// flag tells the caller whether a distinct platform alarm must be cancelled.
func (r *ReminderAssignmentRepository) UpdateOrInsert(ctx context.Context, assignmentID string, newBucketTime, oldBucketTime int64) (*models.ReminderAssignment, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin update transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteAssignmentRow(ctx, tx, assignmentID); err != nil {
		return nil, false, err
	}

	remaining, err := countAssignmentsForBucket(ctx, tx, oldBucketTime)
	if err != nil {
		return nil, false, err
	}
	oldBucketGone := remaining == 0
	if oldBucketGone {
		if err := deleteSlot(ctx, tx, oldBucketTime); err != nil {
			return nil, false, err
		}
	}

	slotID, exists, err := slotForBucket(ctx, tx, newBucketTime)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		slotID, err = insertSlot(ctx, tx, newBucketTime)
		if err != nil {
			return nil, false, err
		}
	}

	if err := upsertAssignment(ctx, tx, assignmentID, newBucketTime); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit update transaction: %w", err)
	}

	return &models.ReminderAssignment{
		AssignmentID: assignmentID,
		BucketTime:   newBucketTime,
		SlotID:       slotID,
	}, oldBucketGone, nil
}

// Delete removes the assignment's association and frees the slot when no
// other assignment still references its bucket.
func (r *ReminderAssignmentRepository) Delete(ctx context.Context, assignmentID string) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	bucketTime, exists, err := bucketForAssignment(ctx, tx, assignmentID)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		// No reminder set for this assignment. Valid steady state.
		return false, 0, tx.Commit()
	}

	slotID, slotExists, err := slotForBucket(ctx, tx, bucketTime)
	if err != nil {
		return false, 0, err
	}

	if err := deleteAssignmentRow(ctx, tx, assignmentID); err != nil {
		return false, 0, err
	}

	remaining, err := countAssignmentsForBucket(ctx, tx, bucketTime)
	if err != nil {
		return false, 0, err
	}

	slotFreed := false
	if remaining == 0 && slotExists {
		if err := deleteSlot(ctx, tx, bucketTime); err != nil {
			return false, 0, err
		}
		slotFreed = true
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	if slotFreed {
		return true, slotID, nil
	}
	return false, 0, nil
}

// AssignmentsForBucket lists assignment ids associated with a bucket time.
func (r *ReminderAssignmentRepository) AssignmentsForBucket(ctx context.Context, bucketTime int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT assignment_id FROM assignment_time_associations WHERE bucket_time = ? ORDER BY assignment_id ASC",
		bucketTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for bucket %d: %w", bucketTime, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan assignment id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Ensure ReminderAssignmentRepository implements the interface
var _ secondary.ReminderAssignmentRepository = (*ReminderAssignmentRepository)(nil)
