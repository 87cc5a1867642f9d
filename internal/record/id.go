package record

import "github.com/google/uuid"

// NewID mints a random identity for a freshly created record.
func NewID() string {
	return uuid.NewString()
}
