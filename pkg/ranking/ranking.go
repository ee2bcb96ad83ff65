// Package ranking assigns standard competition ranks ("1224") to scored
// entries.
//
// Entries are stable-sorted by score in the engine's direction. Entries whose
// scores compare equal share a rank, and the next distinct score is ranked by
// its 1-based position, so ranks skip after a tie group:
//
//	scores 15 9 9 5 2 (descending) -> ranks 1 2 2 4 5
//
// Tie detection always uses the engine's three-way comparison returning zero.
// A score type whose equality disagrees with its ordering is ranked by the
// ordering.
package ranking

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Comparable is implemented by score types that define their own ordering.
// Compare returns a negative number when the receiver orders before other,
// zero when they are equal and a positive number otherwise.
type Comparable[T any] interface {
	Compare(other T) int
}

// ScoredEntry pairs a name with a score. Names need not be unique.
type ScoredEntry[T any] struct {
	Name  string
	Score T
}

// RankedEntry is a ScoredEntry with its assigned rank (1 is best).
type RankedEntry[T any] struct {
	ScoredEntry[T]
	Rank int
}

// Option applies a configuration option to an Engine.
type Option func(*settings)

type settings struct {
	direction Direction
}

// WithDirection sets the sort direction. Unknown values are ignored.
func WithDirection(d Direction) Option {
	return func(s *settings) {
		if d == Descending || d == Ascending {
			s.direction = d
		}
	}
}

// Engine ranks entries with a fixed comparator and direction. It holds no
// mutable state and is safe for concurrent use.
type Engine[T any] struct {
	direction Direction
	compare   func(a, b T) int
	// checkNil enables the nil-score guard; set only when T can hold nil.
	checkNil bool
}

// New creates an engine for ordered scores. The default direction is
// Descending.
func New[T cmp.Ordered](opts ...Option) *Engine[T] {
	return newEngine(cmp.Compare[T], false, opts)
}

// ForLowScore creates an ascending engine for ordered scores, where the
// lowest score ranks first. A direction passed in opts is overridden.
func ForLowScore[T cmp.Ordered](opts ...Option) *Engine[T] {
	return newEngine(cmp.Compare[T], false, append(slices.Clip(opts), WithDirection(Ascending)))
}

// NewComparable creates an engine for scores implementing Comparable.
func NewComparable[T Comparable[T]](opts ...Option) *Engine[T] {
	return newEngine(func(a, b T) int { return a.Compare(b) }, nilable[T](), opts)
}

// NewFunc creates an engine using compare as the three-way comparison.
// It panics if compare is nil.
func NewFunc[T any](compare func(a, b T) int, opts ...Option) *Engine[T] {
	if compare == nil {
		panic("ranking: nil compare func")
	}
	return newEngine(compare, nilable[T](), opts)
}

func newEngine[T any](compare func(a, b T) int, checkNil bool, opts []Option) *Engine[T] {
	s := settings{direction: Descending}
	for _, opt := range opts {
		opt(&s)
	}
	return &Engine[T]{
		direction: s.direction,
		compare:   compare,
		checkNil:  checkNil,
	}
}

// Direction returns the engine's sort direction.
func (e *Engine[T]) Direction() Direction {
	return e.direction
}

// GenerateLeaderboard returns entries ordered best first with competition
// ranks assigned. The input slice is not modified and entries with equal
// scores keep their input order. An empty input yields an empty, non-nil
// result.
//
// A nil pointer or nil interface score is a caller error; it panics with an
// error wrapping ErrNilScore before anything is compared.
func (e *Engine[T]) GenerateLeaderboard(entries []ScoredEntry[T]) []RankedEntry[T] {
	if e.checkNil {
		for i := range entries {
			if isNil(entries[i].Score) {
				panic(fmt.Errorf("%w: entry %d (%q)", ErrNilScore, i, entries[i].Name))
			}
		}
	}

	sorted := make([]ScoredEntry[T], len(entries))
	copy(sorted, entries)
	slices.SortStableFunc(sorted, e.order)

	out := make([]RankedEntry[T], len(sorted))
	var (
		previousScore T
		previousRank  int
	)
	for i, entry := range sorted {
		count := i + 1
		rank := count
		if i > 0 && e.compare(entry.Score, previousScore) == 0 {
			rank = previousRank
		}
		out[i] = RankedEntry[T]{ScoredEntry: entry, Rank: rank}

		previousScore = entry.Score
		previousRank = rank
	}
	return out
}

// order is the sort comparator: negative when a ranks ahead of b.
func (e *Engine[T]) order(a, b ScoredEntry[T]) int {
	if e.direction == Ascending {
		return e.compare(a.Score, b.Score)
	}
	return e.compare(b.Score, a.Score)
}

// Percentile maps a rank to the 0-100 range, 100 for rank 1 and 0 for the
// last position. A board with a single entry scores 100.
func Percentile(rank, total int) float64 {
	if total <= 1 {
		return 100
	}
	return 100 * (1 - float64(rank-1)/float64(total-1))
}

// nilable reports whether values of T can be nil.
func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
