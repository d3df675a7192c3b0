// Package syncplan contains the pure merge logic for reconciling fetched
// remote assignments with the local cache.
package syncplan

// LocalRow is the subset of a cached assignment row the merge needs.
type LocalRow struct {
	ID           string
	ShouldUpload bool
}

// MergeResult describes how to apply a fetched snapshot to the cache.
type MergeResult struct {
	// DeleteIDs are synced local rows to drop before applying the snapshot.
	// Only rows without pending local mutations are ever deleted.
	DeleteIDs []string
	// InsertIDs are fetched assignments to insert.
	InsertIDs []string
	// SkipIDs are fetched assignments suppressed because a pending local
	// mutation for the same id must not be clobbered.
	SkipIDs []string
}

// Merge computes the fetch-replace plan. Local rows flagged for upload
// always survive: they are neither deleted nor overwritten by the fetched
// snapshot, even when the snapshot omits or repeats them. Everything else is
// replaced wholesale — the server is the source of truth for synced rows.
func Merge(local []LocalRow, fetchedIDs []string) MergeResult {
	pending := make(map[string]bool, len(local))
	var result MergeResult

	for _, row := range local {
		if row.ShouldUpload {
			pending[row.ID] = true
			continue
		}
		result.DeleteIDs = append(result.DeleteIDs, row.ID)
	}

	for _, id := range fetchedIDs {
		if pending[id] {
			result.SkipIDs = append(result.SkipIDs, id)
			continue
		}
		result.InsertIDs = append(result.InsertIDs, id)
	}

	return result
}
