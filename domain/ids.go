package domain

import "github.com/google/uuid"

// NewID returns a fresh opaque entity identifier
func NewID() string {
	return uuid.NewString()
}

// ValidateID rejects identifiers that could never address a stored record
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: "id", Reason: "not a valid ID"}
	}
	return nil
}
