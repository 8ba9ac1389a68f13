// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityType identifies one of the record kinds exposed through the sync
// protocol. The set is closed: the sync layer never learns about new kinds
// at runtime.
type EntityType string

const (
	EntityPreference EntityType = "preference"
	EntityRequest    EntityType = "request"
	EntitySummary    EntityType = "summary"
	EntityCrawl      EntityType = "crawl"
	EntityModelCall  EntityType = "model_call"
)

// KnownEntityTypes lists every entity kind served by the sync protocol, in
// the order record collection enumerates them.
var KnownEntityTypes = []EntityType{
	EntityPreference,
	EntityRequest,
	EntitySummary,
	EntityCrawl,
	EntityModelCall,
}

// Valid reports whether t is one of the known entity kinds.
func (t EntityType) Valid() bool {
	switch t {
	case EntityPreference, EntityRequest, EntitySummary, EntityCrawl, EntityModelCall:
		return true
	}
	return false
}

// EntityEnvelope is the uniform wrapper around any entity kind. It exposes
// type, id, version, and timestamps so that collection, pagination, and
// delivery never branch on the concrete kind.
//
// Payload carries the entity's business fields opaquely and is present
// exactly when DeletedAt is absent: a soft-deleted record syncs as an
// envelope shell, so its deletion can itself be delivered as a versioned
// event.
type EntityEnvelope struct {
	// EntityType is the record kind this envelope wraps.
	EntityType EntityType `json:"entity_type"`

	// ID is the opaque per-kind identifier. Numeric collaborator IDs are
	// rendered in decimal; the sync layer never interprets the value.
	ID string `json:"id"`

	// ServerVersion is the collaborator-assigned logical clock for this
	// record. It is non-decreasing for a given (EntityType, ID) and is
	// bumped on every mutation, including soft delete. Values are compared
	// only by relative order within a kind.
	ServerVersion int64 `json:"server_version"`

	// UpdatedAt is the time of the last mutation. Always present.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks a soft-deleted record. Nil for live records.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Payload holds the entity's business fields. Present iff DeletedAt
	// is nil.
	Payload map[string]any `json:"payload,omitempty"`
}

// Deleted reports whether the envelope describes a soft-deleted record.
func (e EntityEnvelope) Deleted() bool {
	return e.DeletedAt != nil
}

// EnvelopeProducer is implemented by every entity kind that can be served
// through the sync protocol. The record collector is written against this
// capability only, so adding a kind never touches the sync pipeline.
type EnvelopeProducer interface {
	ToEnvelope() EntityEnvelope
}
