package rankcheck

import (
	"errors"
	"fmt"

	"github.com/okian/standings/pkg/ranking"
)

// Check verifies that entries form a competition ranked board in the
// given direction. It returns nil when the board is valid, otherwise a
// joined error with one ErrViolation per problem found.
func Check(entries []Entry, dir ranking.Direction) error {
	var errs []error
	report := func(format string, args ...any) {
		if len(errs) < maxReported {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrViolation}, args...)...))
		}
	}

	if len(entries) > 0 && entries[0].Rank != 1 {
		report("first entry %q has rank %d", entries[0].Name, entries[0].Rank)
	}

	groupStart := 0
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Rank < prev.Rank {
			report("rank decreases at %d: %d after %d", i, cur.Rank, prev.Rank)
		}
		if cur.Score == prev.Score {
			if cur.Rank != prev.Rank {
				report("tied score %v at %d has rank %d, previous has %d", cur.Score, i, cur.Rank, prev.Rank)
			}
			continue
		}
		if !better(prev.Score, cur.Score, dir) {
			report("entry %d (%v) is not ordered %s after %v", i, cur.Score, dir, prev.Score)
		}
		groupStart = i
		// Every entry before the group scores strictly better.
		if cur.Rank != groupStart+1 {
			report("entry %q at %d has rank %d, want %d", cur.Name, i, cur.Rank, groupStart+1)
		}
	}

	return errors.Join(errs...)
}

// better reports whether a ranks strictly ahead of b.
func better(a, b float64, dir ranking.Direction) bool {
	if dir == ranking.Ascending {
		return a < b
	}
	return a > b
}

// sameRanks reports the names whose rank differs between two boards of
// the same results.
func sameRanks(a, b []Entry) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d entries, then %d", ErrUnstable, len(a), len(b))
	}
	ranks := make(map[string]int, len(a))
	for _, e := range a {
		ranks[e.Name] = e.Rank
	}
	var errs []error
	for _, e := range b {
		want, ok := ranks[e.Name]
		if !ok || want != e.Rank {
			errs = append(errs, fmt.Errorf("%w: %q ranked %d, then %d", ErrUnstable, e.Name, want, e.Rank))
			if len(errs) >= maxReported {
				break
			}
		}
	}
	return errors.Join(errs...)
}
