package models

import "time"

// SyncSession is the persisted state of one bounded sync session. It is
// created by the start-session operation and read-only afterward; expiry is
// enforced by the backing store's TTL, or by comparing ExpiresAt on read
// when the in-process fallback store is in use.
type SyncSession struct {
	// SessionID is the opaque session token handed to the client.
	SessionID string `json:"session_id"`

	// OwnerID is the identity the session was issued for. Every call
	// presenting this session must match it exactly.
	OwnerID int64 `json:"owner_id"`

	// ClientID is the logical device identifier supplied at session start.
	// May be empty. A session issued for one device is unusable from
	// another, so the stored and presented values must match exactly.
	ClientID string `json:"client_id,omitempty"`

	// PageLimit is the negotiated page size stored at session start. Calls
	// may override it per request; this value is the fallback.
	PageLimit int `json:"page_limit"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is past its expiry at the given
// instant. Used on the fallback read path, where no store-native TTL evicts
// the record for us.
func (s SyncSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SyncSessionInfo is what the start-session operation returns to the
// client: the token plus the negotiated paging parameters and the initial
// watermark.
type SyncSessionInfo struct {
	SessionID    string    `json:"session_id"`
	DefaultLimit int       `json:"default_limit"`
	MaxLimit     int       `json:"max_limit"`
	ExpiresAt    time.Time `json:"expires_at"`

	// Since is the initial watermark, always zero for a fresh session.
	Since int64 `json:"since"`
}
