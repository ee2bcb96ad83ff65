// Package types contains the request and response shapes shared by the
// service and its HTTP adapter.
package types

import (
	"encoding/json"

	"github.com/okian/standings/pkg/ranking"
)

// Scale names how scores in a request are interpreted.
type Scale string

// Supported scales.
const (
	// ScaleNumeric scores are JSON numbers.
	ScaleNumeric Scale = "numeric"
	// ScaleVerdict scores are verdict labels such as "Meh" or "Awesome".
	ScaleVerdict Scale = "verdict"
)

// Result is one named score as submitted. Score stays raw until the scale
// is known.
type Result struct {
	Name  string          `json:"name"`
	Score json.RawMessage `json:"score"`
}

// Request asks for one leaderboard. An empty Scale means numeric and an
// empty Direction means the service default.
type Request struct {
	Scale     Scale    `json:"scale,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Results   []Result `json:"results"`
}

// Entry represents a leaderboard entry.
type Entry struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Score      any     `json:"score"`
	Percentile float64 `json:"percentile"`
}

// Board is a ranked leaderboard, best first.
type Board struct {
	Scale     Scale             `json:"scale"`
	Direction ranking.Direction `json:"direction"`
	Entries   []Entry           `json:"entries"`
}
