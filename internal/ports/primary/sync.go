package primary

import "context"

// SyncService reconciles the local assignment cache with the remote server.
type SyncService interface {
	// Refresh uploads pending local mutations, deletes confirmed-uploaded
	// rows, then fetches and merges the remote assignment set. An upload
	// failure is logged and retried next cycle; a fetch failure aborts the
	// refresh and is returned.
	Refresh(ctx context.Context) error
}
