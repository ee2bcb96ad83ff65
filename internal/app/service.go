// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/internal/domain/verdict"
	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/metrics"
	"github.com/okian/standings/pkg/ranking"
)

// Default service configuration constants.
const (
	defaultMaxEntries = 100_000
)

// Rejection reasons reported to metrics.
const (
	reasonUnknownScale   = "unknown_scale"
	reasonBadDirection   = "invalid_direction"
	reasonTooManyEntries = "too_many_entries"
	reasonInvalidScore   = "invalid_score"
)

// Service ranks submitted leaderboards. It keeps no per-request state and
// is safe for concurrent use.
type Service struct {
	// Engines, one per scale and direction. Engines are immutable.
	numeric map[ranking.Direction]*ranking.Engine[exactNumber]
	verdict map[ranking.Direction]*ranking.Engine[verdict.Verdict]

	// Configuration
	direction  ranking.Direction
	maxEntries int

	// Counters for GetStats
	leaderboards  atomic.Int64
	entriesRanked atomic.Int64
	rejected      atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDirection sets the direction used when a request does not name one.
func WithDirection(d ranking.Direction) Option {
	return func(s *Service) {
		if d == ranking.Descending || d == ranking.Ascending {
			s.direction = d
		}
	}
}

// WithMaxEntries caps the number of results accepted per request.
func WithMaxEntries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// New constructs a new Service with default configuration. Without
// WithLogger the global logger is used, so logger.Init must run first.
func New(opts ...Option) *Service {
	s := &Service{
		numeric: map[ranking.Direction]*ranking.Engine[exactNumber]{
			ranking.Descending: ranking.NewComparable[exactNumber](),
			ranking.Ascending:  ranking.NewComparable[exactNumber](ranking.WithDirection(ranking.Ascending)),
		},
		verdict: map[ranking.Direction]*ranking.Engine[verdict.Verdict]{
			ranking.Descending: ranking.NewComparable[verdict.Verdict](),
			ranking.Ascending:  ranking.NewComparable[verdict.Verdict](ranking.WithDirection(ranking.Ascending)),
		},
		direction:  ranking.Descending,
		maxEntries: defaultMaxEntries,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Leaderboard validates req, ranks its results and returns the board best
// first. Validation failures wrap types.ErrUnknownScale,
// types.ErrTooManyEntries, types.ErrInvalidScore or
// ranking.ErrInvalidDirection.
func (s *Service) Leaderboard(ctx context.Context, req types.Request) (types.Board, error) {
	scale := req.Scale
	if scale == "" {
		scale = types.ScaleNumeric
	}

	direction := s.direction
	if req.Direction != "" {
		d, err := ranking.ParseDirection(req.Direction)
		if err != nil {
			return types.Board{}, s.reject(ctx, reasonBadDirection, err)
		}
		direction = d
	}

	if len(req.Results) > s.maxEntries {
		return types.Board{}, s.reject(ctx, reasonTooManyEntries,
			fmt.Errorf("%w: %d results, limit is %d", types.ErrTooManyEntries, len(req.Results), s.maxEntries))
	}

	start := time.Now()
	var (
		entries []types.Entry
		err     error
	)
	switch scale {
	case types.ScaleNumeric:
		entries, err = rankResults(s.numeric[direction], req.Results, decodeNumeric, exactNumber.wire)
	case types.ScaleVerdict:
		entries, err = rankResults(s.verdict[direction], req.Results, decodeVerdict, verdictWire)
	default:
		return types.Board{}, s.reject(ctx, reasonUnknownScale, fmt.Errorf("%w: %q", types.ErrUnknownScale, scale))
	}
	if err != nil {
		return types.Board{}, s.reject(ctx, reasonInvalidScore, err)
	}
	elapsed := time.Since(start)

	ties := countTieGroups(entries)
	metrics.RecordLeaderboard(string(scale), direction.String(), len(entries), ties, float64(elapsed.Microseconds())/1000)
	s.leaderboards.Add(1)
	s.entriesRanked.Add(int64(len(entries)))

	s.logger.Debug(ctx, "leaderboard generated",
		logger.String("scale", string(scale)),
		logger.String("direction", direction.String()),
		logger.Int("entries", len(entries)),
		logger.Int("tieGroups", ties),
		logger.String("elapsed", elapsed.String()),
	)

	return types.Board{Scale: scale, Direction: direction, Entries: entries}, nil
}

func (s *Service) reject(ctx context.Context, reason string, err error) error {
	s.rejected.Add(1)
	metrics.RecordRejected(reason)
	metrics.RecordErrorByComponent("app", reason)
	s.logger.Debug(ctx, "leaderboard request rejected",
		logger.String("reason", reason),
		logger.Error(err),
	)
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"leaderboards":     s.leaderboards.Load(),
		"entriesRanked":    s.entriesRanked.Load(),
		"rejected":         s.rejected.Load(),
		"maxEntries":       s.maxEntries,
		"defaultDirection": s.direction.String(),
	}
}

// rankResults decodes every score with decode, ranks them with engine and
// maps the board to API entries, writing each score through wire.
func rankResults[T any](engine *ranking.Engine[T], results []types.Result, decode func(json.RawMessage) (T, error), wire func(T) any) ([]types.Entry, error) {
	scored := make([]ranking.ScoredEntry[T], len(results))
	for i, r := range results {
		score, err := decode(r.Score)
		if err != nil {
			return nil, fmt.Errorf("result %d (%q): %w", i, r.Name, err)
		}
		scored[i] = ranking.ScoredEntry[T]{Name: r.Name, Score: score}
	}

	board := engine.GenerateLeaderboard(scored)
	entries := make([]types.Entry, len(board))
	for i, e := range board {
		entries[i] = types.Entry{
			Rank:       e.Rank,
			Name:       e.Name,
			Score:      wire(e.Score),
			Percentile: ranking.Percentile(e.Rank, len(board)),
		}
	}
	return entries, nil
}

var jsonNull = []byte("null")

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

func verdictWire(v verdict.Verdict) any { return v }

func decodeVerdict(raw json.RawMessage) (verdict.Verdict, error) {
	if isAbsent(raw) {
		return 0, fmt.Errorf("%w: missing score", types.ErrInvalidScore)
	}
	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return 0, fmt.Errorf("%w: %s is not a verdict label", types.ErrInvalidScore, raw)
	}
	v, err := verdict.Parse(label)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrInvalidScore, err)
	}
	return v, nil
}

// countTieGroups counts runs of two or more consecutive entries sharing a rank.
func countTieGroups(entries []types.Entry) int {
	groups := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Rank == entries[i-1].Rank && (i == 1 || entries[i-2].Rank != entries[i].Rank) {
			groups++
		}
	}
	return groups
}
