package ranking

import (
	"fmt"
	"strings"
)

// Direction selects which end of the score range ranks first.
type Direction int

const (
	// Descending ranks the highest score first. It is the zero value.
	Descending Direction = iota
	// Ascending ranks the lowest score first.
	Ascending
)

// String returns the short wire name of the direction.
func (d Direction) String() string {
	switch d {
	case Descending:
		return "desc"
	case Ascending:
		return "asc"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts desc/descending/high and asc/ascending/low,
// case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "high":
		return Descending, nil
	case "asc", "ascending", "low":
		return Ascending, nil
	default:
		return Descending, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d != Descending && d != Ascending {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
