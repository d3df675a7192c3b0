package db

// SchemaSQL is the complete schema for fresh chores-client installs.
//
// This is the SINGLE SOURCE OF TRUTH for the local cache layout. All tests
// use this schema via GetSchemaSQL(); if repository code references a column
// that doesn't exist here, tests fail immediately with "no such column"
// instead of drifting against production.
//
// Three logical tables back the reminder core:
//
//   - time_slot_associations: one row per distinct reminder bucket time.
//     bucket_time is UNIQUE on purpose — at most one slot (and therefore one
//     platform alarm) per due-time value. A raced duplicate insert must
//     abort, never replace, because replacing would orphan the alarm already
//     scheduled under the old slot id.
//
//   - assignment_time_associations: assignment -> bucket mapping. Many
//     assignments may share one bucket. Plain replace-on-conflict is safe
//     here; reassigning an assignment to a new bucket is idempotent.
//
//   - task_assignments: the locally cached copy of the remote dataset, plus
//     the should_upload flag marking local mutations pending transmission.
const SchemaSQL = `
-- Reminder slots (one per distinct due-time bucket)
CREATE TABLE IF NOT EXISTS time_slot_associations (
	slot_id INTEGER PRIMARY KEY AUTOINCREMENT,
	bucket_time INTEGER NOT NULL UNIQUE
);

-- Assignment to bucket mapping (many assignments per bucket)
CREATE TABLE IF NOT EXISTS assignment_time_associations (
	assignment_id TEXT PRIMARY KEY,
	bucket_time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assignment_time_bucket
	ON assignment_time_associations(bucket_time);

-- Local cache of remote task assignments
CREATE TABLE IF NOT EXISTS task_assignments (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	task_name TEXT NOT NULL DEFAULT '',
	member_id TEXT NOT NULL,
	due_date_time INTEGER NOT NULL,
	repeat_unit TEXT NOT NULL DEFAULT 'NONE',
	progress_status TEXT NOT NULL DEFAULT 'TODO',
	progress_status_date INTEGER NOT NULL DEFAULT 0,
	should_upload INTEGER NOT NULL DEFAULT 0,
	created_date INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_task_assignments_due
	ON task_assignments(due_date_time);
`

// GetSchemaSQL returns the authoritative schema SQL.
// Tests must use this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables if they don't exist.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return nil
}
