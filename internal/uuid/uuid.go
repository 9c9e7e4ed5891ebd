package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// Gen produces a new random identifier. Injected into services so tests
// can pin ids.
type Gen func() string

// New returns a random UUID string.
func New() string {
	return uuid.NewString()
}

// Validate reports whether s parses as a UUID.
func Validate(s string) error {
	_, err := uuid.Parse(s)
	return err
}

// Short returns the first 12 hex characters of a random UUID without
// dashes, used as the collision-resistant part of generated file names.
func Short() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
