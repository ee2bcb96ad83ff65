// Package verdict defines an ordinal, non-numeric score scale.
//
// Verdicts order from ICantEven (worst) to Awesome (best). They rank through
// their Compare method rather than arithmetic, which makes the scale usable
// with ranking.NewComparable.
package verdict

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVerdict is returned when a label does not name a verdict.
var ErrUnknownVerdict = errors.New("unknown verdict")

// Verdict is one of seven ordered levels.
type Verdict int

// Levels, worst first.
const (
	ICantEven Verdict = iota
	OMG
	Bad
	Meh
	Good
	Great
	Awesome
)

var labels = [...]string{
	ICantEven: "I Can't Even",
	OMG:       "OMG",
	Bad:       "Bad",
	Meh:       "Meh",
	Good:      "Good",
	Great:     "Great",
	Awesome:   "Awesome",
}

// byKey indexes verdicts by normalized label.
var byKey = func() map[string]Verdict {
	m := make(map[string]Verdict, len(labels))
	for v, label := range labels {
		m[normalize(label)] = Verdict(v)
	}
	return m
}()

// All returns every verdict, worst first.
func All() []Verdict {
	return []Verdict{ICantEven, OMG, Bad, Meh, Good, Great, Awesome}
}

// Valid reports whether v is one of the seven levels.
func (v Verdict) Valid() bool {
	return v >= ICantEven && v <= Awesome
}

// Compare orders verdicts from worst to best.
func (v Verdict) Compare(other Verdict) int {
	return cmp.Compare(v, other)
}

func (v Verdict) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
	return labels[v]
}

// Parse resolves a label. Matching ignores case, spaces, apostrophes,
// hyphens and underscores, so "I Can't Even", "icanteven" and "I_CANT_EVEN"
// are the same verdict.
func Parse(s string) (Verdict, error) {
	v, ok := byKey[normalize(s)]
	if !ok {
		return ICantEven, fmt.Errorf("%w: %q", ErrUnknownVerdict, s)
	}
	return v, nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVerdict, int(v))
	}
	return []byte(labels[v]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\'', '’', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
