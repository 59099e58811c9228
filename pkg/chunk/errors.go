package chunk

import "errors"

var (
	// ErrNotFound is returned when no chunk exists for the requested locale.
	ErrNotFound = errors.New("chunk: no chunk for locale")

	// ErrBadStatus is returned when a remote chunk fetch answers with an
	// unexpected HTTP status.
	ErrBadStatus = errors.New("chunk: unexpected response status")

	// ErrInvalidMessages is returned when a message catalog cannot be parsed.
	ErrInvalidMessages = errors.New("chunk: invalid message catalog")
)
