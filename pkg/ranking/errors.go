package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrNilScore         = errors.New("nil score")
	ErrInvalidDirection = errors.New("invalid ranking direction")
)
