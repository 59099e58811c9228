package locales

import "errors"

var (
	// ErrUnreadableDir is returned when the message directory cannot be read.
	ErrUnreadableDir = errors.New("locales: message directory not readable")
)
