// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Pagination describes the slice of the merged record stream a full-sync
// page was cut from. Offset is always zero: paging is watermark-based, the
// field exists so clients can reuse their generic pagination decoding.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// FullSyncResult is one page of a full sync, used for first-time device
// bootstrap. NextSince is the watermark to resume from.
type FullSyncResult struct {
	SessionID  string           `json:"session_id"`
	HasMore    bool             `json:"has_more"`
	NextSince  int64            `json:"next_since"`
	Items      []EntityEnvelope `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// DeltaSyncResult is one page of changes strictly newer than the client's
// watermark, partitioned by deletion state.
//
// Updated is always empty: a record's presence in any page whose version
// exceeds the watermark is itself the "this changed" signal, whether it is
// a first-time creation or a later edit. Distinguishing the two would
// require prior-version history the collaborator storage does not keep, so
// clients upsert by id regardless of the bucket.
type DeltaSyncResult struct {
	SessionID string           `json:"session_id"`
	Since     int64            `json:"since"`
	HasMore   bool             `json:"has_more"`
	NextSince int64            `json:"next_since"`
	Created   []EntityEnvelope `json:"created"`
	Updated   []EntityEnvelope `json:"updated"`
	Deleted   []EntityEnvelope `json:"deleted"`
}
