package models

// PendingReadMark is a read-flag edit made on the device while offline,
// queued in the local mirror until the server acknowledges it.
type PendingReadMark struct {
	// ID is the summary identifier as the server serialises it.
	ID string `json:"id"`
	// IsRead is the locally desired value of the flag.
	IsRead bool `json:"is_read"`
	// LastSeenVersion is the mirrored server_version at edit time, sent
	// as the optimistic-concurrency precondition.
	LastSeenVersion int64 `json:"last_seen_version"`
}
