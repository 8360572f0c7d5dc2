package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique constraint rejects a write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStateConflict is returned when a guarded update finds the row in another state.
	ErrStateConflict = errors.New("state conflict")
	// ErrGenerationFailed wraps every completion client failure.
	ErrGenerationFailed = errors.New("text generation failed")
)
