package utils

import "github.com/google/uuid"

// UUIDGenerator produces session tokens. Version-7 UUIDs are preferred for
// their time-ordered prefix; on the rare construction failure a random v4
// is used instead.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
