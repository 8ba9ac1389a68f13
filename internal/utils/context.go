// Package utils provides general-purpose helpers used across the
// application: type-safe context keys, HTTP response writing, JWT
// verification, and token generation for tests and tooling.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that
// may store string-keyed values in the same context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// OwnerIDCtxKey is the key under which the auth middleware stores the
// authenticated owner identity. Retrieve it with GetOwnerIDFromContext.
var OwnerIDCtxKey = contextKey("ownerID")

// GetOwnerIDFromContext retrieves the owner identity from the context.
//
// The ok flag is false when the value is missing or has an unexpected
// type.
func GetOwnerIDFromContext(ctx context.Context) (int64, bool) {
	ownerID, ok := ctx.Value(OwnerIDCtxKey).(int64)
	return ownerID, ok
}
