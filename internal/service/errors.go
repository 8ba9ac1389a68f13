package service

import "errors"

var (
	// ErrSessionNotFound means the presented session token does not exist,
	// either never issued or already evicted by the store's TTL.
	ErrSessionNotFound = errors.New("sync session not found")

	// ErrSessionForbidden means the session exists but was issued to a
	// different owner or a different device.
	ErrSessionForbidden = errors.New("sync session belongs to another owner or device")

	// ErrSessionExpired means the session's lifetime has passed.
	ErrSessionExpired = errors.New("sync session is expired")

	ErrTokenIsExpired = errors.New("token is expired")

	ErrValidationNoSessionID = errors.New("no session token provided")
	ErrValidationNoOwnerID   = errors.New("no owner identity resolved for request")
	ErrValidationBadSince    = errors.New("watermark must not be negative")
	ErrValidationNoChanges   = errors.New("no changes provided to apply")
)
