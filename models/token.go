package models

import "github.com/golang-jwt/jwt/v5"

// Token is the parsed form of the bearer token issued by the upstream auth
// service. This subsystem only verifies tokens; it never issues them.
type Token struct {
	jwt.RegisteredClaims

	// OwnerID is the user identity extracted from the token subject.
	OwnerID int64 `json:"-"`

	// SignedString is the raw compact serialization, kept for forwarding.
	SignedString string `json:"-"`
}
