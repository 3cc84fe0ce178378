package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the opaque handle assigned to a requested schema for one run.
// IDs are UUIDv7 values, so they sort by generation time.
type ID uuid.UUID

// NewID returns a fresh time-ordered identifier.
func NewID() (ID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return ID{}, fmt.Errorf("generate schema id: %w", err)
	}

	return ID(u), nil
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Compare orders IDs bytewise, which for UUIDv7 is generation order.
func (id ID) Compare(other ID) int {
	for i := range id {
		switch {
		case id[i] < other[i]:
			return -1
		case id[i] > other[i]:
			return 1
		}
	}

	return 0
}
