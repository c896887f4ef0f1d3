package utils

import "github.com/google/uuid"

// UUIDGenerator produces record identifiers. V7 identifiers sort by creation
// time, which keeps newest-first listings cheap.
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
