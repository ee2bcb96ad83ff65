package types

import "errors"

// Sentinel kinds for request validation errors.
var (
	ErrUnknownScale   = errors.New("unknown score scale")
	ErrTooManyEntries = errors.New("too many entries")
	ErrInvalidScore   = errors.New("invalid score")
)
