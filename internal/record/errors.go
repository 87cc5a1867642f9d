package record

import "errors"

var (
	// ErrDuplicateIdentity is returned when a record id is already present.
	ErrDuplicateIdentity = errors.New("duplicate identity")
	// ErrUnknownIdentity is returned when an operation references a missing id.
	ErrUnknownIdentity = errors.New("unknown identity")
	// ErrIndexOutOfRange is returned for a position outside its sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidRecord wraps field validation failures.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrStorageUnavailable is returned when a snapshot cannot be read.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageWriteFailed is returned when a snapshot cannot be written.
	ErrStorageWriteFailed = errors.New("storage write failed")
)
