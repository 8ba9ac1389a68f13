package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateAndParseToken verifies a bearer token issued by the upstream
// auth service and extracts the owner identity from its subject claim.
//
// Validation covers the HMAC-SHA256 signature, the issuer claim, and the
// expiry claim. The subject must be present and parse as a decimal owner
// ID.
func ValidateAndParseToken(tokenString, signKey, issuer string) (models.Token, error) {
	parsed := &models.Token{}
	_, err := jwt.ParseWithClaims(tokenString, &parsed.RegisteredClaims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject := parsed.Subject
	if subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	ownerID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred converting subject to owner ID: %w", err)
	}

	parsed.OwnerID = ownerID
	parsed.SignedString = tokenString

	return *parsed, nil
}

// GenerateToken creates a signed HMAC-SHA256 token for the given owner.
// Token issuance belongs to the upstream auth service; this helper exists
// for tests and local tooling that need a token the middleware accepts.
func GenerateToken(issuer string, ownerID int64, duration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || duration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating token")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(ownerID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, OwnerID: ownerID, SignedString: signed}, nil
}

// ParseBearerToken extracts the token from a raw "Authorization" header
// value of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
