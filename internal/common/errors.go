package common

import "errors"

var (
	// Storage-level errors.
	ErrStorageFailure = errors.New("storage failure")

	// Corrupt persisted value that could not be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)
