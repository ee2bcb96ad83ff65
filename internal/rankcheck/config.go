package rankcheck

import (
	"fmt"
	"time"

	"github.com/okian/standings/pkg/ranking"
)

// Config holds configuration for a rank check run
type Config struct {
	BaseURL   string        // Base URL of the service
	Batches   int           // Number of leaderboards to request
	BatchSize int           // Results per leaderboard
	Workers   int           // Number of concurrent workers
	RPS       float64       // Request rate limit, <= 0 means unlimited
	Timeout   time.Duration // HTTP request timeout
	Direction string        // Ranking direction sent with every request
	Verbose   bool          // Log every checked board
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url must not be empty", ErrConfig)
	case c.Batches < 1:
		return fmt.Errorf("%w: batches must be positive", ErrConfig)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be positive", ErrConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrConfig)
	}
	if _, err := c.direction(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func (c *Config) direction() (ranking.Direction, error) {
	if c.Direction == "" {
		return ranking.Descending, nil
	}
	return ranking.ParseDirection(c.Direction)
}

// Result is one named numeric score as submitted.
type Result struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Entry represents a leaderboard entry
type Entry struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Percentile float64 `json:"percentile"`
}

type request struct {
	Scale     string   `json:"scale"`
	Direction string   `json:"direction"`
	Results   []Result `json:"results"`
}

type board struct {
	Scale     string  `json:"scale"`
	Direction string  `json:"direction"`
	Entries   []Entry `json:"entries"`
}

// Stats holds run statistics
type Stats struct {
	BatchesGenerated  int
	RequestsSubmitted int
	BatchesPassed     int
	BatchesFailed     int
	Violations        int
	Unstable          int
	EntriesRanked     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
