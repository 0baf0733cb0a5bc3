package vault

import "github.com/google/uuid"

// NewID returns a fresh record id.
//
// UUIDv7 ids are time-ordered, so ids sort roughly by creation time
// and are never reused. If the random source fails (the only error
// path in NewV7), fall back to a v4 id rather than failing the write.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
