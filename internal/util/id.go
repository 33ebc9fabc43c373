package util

import "github.com/google/uuid"

// NewRequestID returns a fresh id for requests that arrive without one.
func NewRequestID() string {
	return uuid.NewString()
}
