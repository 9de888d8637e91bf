package sample

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Float attempts numeric coercion of the cell. Strings are parsed as
// base-10 floating point; null never coerces. Failure is a normal
// outcome, not an error.
func (c Cell) Float() (float64, bool) {
	switch c.typ {
	case TypeNumber:
		return c.num, true
	case TypeString:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Decimal reports whether the cell parses as an arbitrary-precision
// decimal number. Negative, zero, and fractional values are accepted;
// infinities and non-numeric strings are not.
func (c Cell) Decimal() bool {
	if c.typ == TypeNumber {
		return true
	}
	if c.typ != TypeString {
		return false
	}
	f, ok := new(big.Float).SetString(strings.TrimSpace(c.str))
	return ok && !f.IsInf()
}

// Integer reports whether the cell parses as a base-10 integer with an
// optional sign. Numbers pass only when they have no fractional part.
func (c Cell) Integer() bool {
	switch c.typ {
	case TypeNumber:
		// Trunc comparison works for magnitudes beyond int64 range,
		// where a float-to-int conversion would be undefined.
		return !math.IsInf(c.num, 0) && math.Trunc(c.num) == c.num
	case TypeString:
		_, ok := new(big.Int).SetString(strings.TrimSpace(c.str), 10)
		return ok
	default:
		return false
	}
}

// ParseCell converts a raw spreadsheet string into a cell: empty strings
// become null, everything else stays a string. Numeric interpretation is
// left to the validators' coercions so that malformed numbers surface as
// validation failures rather than parse faults.
func ParseCell(raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Null
	}
	return String(raw)
}
