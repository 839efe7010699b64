package core

import "errors"

var (
	// ErrNotFound reports a lookup of an unregistered type or entity name.
	// Callers are expected to treat it as fatal, never to silently default.
	ErrNotFound = errors.New("not found")
)
