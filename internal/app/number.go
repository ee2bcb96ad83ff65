package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/okian/standings/internal/domain/types"
)

// maxExponent bounds the decimal exponent of a numeric score. Larger
// exponents would make exact parsing allocate without limit.
const maxExponent = 400

// exactNumber is a numeric score compared without rounding. text is the
// number exactly as submitted and is what the board echoes back.
type exactNumber struct {
	value *big.Rat
	text  json.Number
}

// Compare orders numbers by exact value.
func (n exactNumber) Compare(other exactNumber) int {
	return n.value.Cmp(other.value)
}

func decodeNumeric(raw json.RawMessage) (exactNumber, error) {
	if isAbsent(raw) {
		return exactNumber{}, fmt.Errorf("%w: missing score", types.ErrInvalidScore)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return exactNumber{}, fmt.Errorf("%w: %s is not a number", types.ErrInvalidScore, raw)
	}
	num, ok := v.(json.Number)
	if !ok {
		return exactNumber{}, fmt.Errorf("%w: %s is not a number", types.ErrInvalidScore, raw)
	}

	text := num.String()
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		exp, err := strconv.Atoi(text[i+1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return exactNumber{}, fmt.Errorf("%w: %s is out of range", types.ErrInvalidScore, text)
		}
	}

	value, ok := new(big.Rat).SetString(text)
	if !ok {
		return exactNumber{}, fmt.Errorf("%w: %s is not a number", types.ErrInvalidScore, text)
	}
	return exactNumber{value: value, text: num}, nil
}

func (n exactNumber) wire() any { return n.text }
