package models

// Request bodies accepted by the HTTP sync API. The owner identity never
// appears here: it is resolved from the bearer token by the auth
// middleware. The client identifier does appear, because session
// validation compares it against the value stored at session start.

// StartSessionRequest opens a bounded sync session.
type StartSessionRequest struct {
	// ClientID is an optional logical device identifier. When set, the
	// session is bound to it and unusable from any other device.
	ClientID string `json:"client_id,omitempty"`

	// Limit is the requested page size. Zero means "use the server
	// default"; out-of-range values are clamped, not rejected.
	Limit int `json:"limit,omitempty"`
}

// FullSyncRequest asks for one page of the complete record stream.
type FullSyncRequest struct {
	SessionID string `json:"session_id"`
	ClientID  string `json:"client_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// DeltaSyncRequest asks for one page of records strictly newer than Since.
type DeltaSyncRequest struct {
	SessionID string `json:"session_id"`
	ClientID  string `json:"client_id,omitempty"`
	Since     int64  `json:"since"`
	Limit     int    `json:"limit,omitempty"`
}

// ApplyRequest pushes a batch of local edits.
type ApplyRequest struct {
	SessionID string          `json:"session_id"`
	ClientID  string          `json:"client_id,omitempty"`
	Changes   []SyncApplyItem `json:"changes"`
}
