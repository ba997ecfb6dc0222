package services

import "errors"

var (
	// ErrValidation covers bad request payloads before they reach storage.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
