package rankcheck

import "errors"

// Sentinel kinds for rank check failures.
var (
	ErrConfig    = errors.New("invalid rankcheck config")
	ErrViolation = errors.New("ranking violation")
	ErrSubmit    = errors.New("leaderboard submission failed")
	ErrUnstable  = errors.New("ranking not reproducible")
)
