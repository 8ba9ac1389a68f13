package service

import (
	"sort"

	"github.com/MKhiriev/go-digest-sync/models"
)

// paginate cuts one page out of the canonically sorted record stream,
// keeping only records with version strictly greater than since. The
// watermark is exclusive: a record whose version equals since was already
// delivered on the page that returned that cursor.
//
// nextSince is the version of the last record on the page, or since
// itself when the page is empty, so a client resuming from nextSince
// never re-receives a full page it has already absorbed and never skips
// one.
func paginate(records []models.EntityEnvelope, since int64, limit int) (page []models.EntityEnvelope, total int, hasMore bool, nextSince int64) {
	// Records are sorted by version ascending, so the first qualifying
	// record is found by binary search.
	start := sort.Search(len(records), func(i int) bool {
		return records[i].ServerVersion > since
	})

	remaining := records[start:]
	total = len(remaining)
	nextSince = since

	if limit > 0 && len(remaining) > limit {
		// Never split a group of records sharing one version across
		// pages: the cursor carries only the version, so a mid-group cut
		// would lose the group's tail on resume. The limit is a soft
		// bound at version-group granularity.
		cut := limit
		for cut < len(remaining) && remaining[cut].ServerVersion == remaining[cut-1].ServerVersion {
			cut++
		}
		if cut < len(remaining) {
			remaining = remaining[:cut]
			hasMore = true
		}
	}

	if len(remaining) > 0 {
		nextSince = remaining[len(remaining)-1].ServerVersion
	}

	return remaining, total, hasMore, nextSince
}
