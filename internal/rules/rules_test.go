package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
)

func TestRangeBoundaryInclusivity(t *testing.T) {
	rng, err := Range(0, 35)
	require.NoError(t, err)

	assert.True(t, rng.Check(sample.String("0")))
	assert.True(t, rng.Check(sample.String("35")))
	assert.True(t, rng.Check(sample.String("17.5")))
	assert.False(t, rng.Check(sample.String("-0.0001")))
	assert.False(t, rng.Check(sample.String("35.0001")))
}

func TestRangeNonNumericFailsCleanly(t *testing.T) {
	rng, err := Range(0, 10)
	require.NoError(t, err)

	assert.False(t, rng.Check(sample.String("abc")))
	assert.False(t, rng.Check(sample.Null))
}

func TestRangeInvalidBounds(t *testing.T) {
	_, err := Range(10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBadRange)
	assert.True(t, core.IsConfigFault(err))
}

func TestOneOfExactMatch(t *testing.T) {
	v := OneOf("AR-04", "AT-26")

	assert.True(t, v.Check(sample.String("AR-04")))
	assert.False(t, v.Check(sample.String("ar-04")))
	assert.False(t, v.Check(sample.String("AR-04 ")))
	assert.False(t, v.Check(sample.Null))
}

func TestPatternAnchoredFullMatch(t *testing.T) {
	v, err := Pattern(`\*(0|1){16}`)
	require.NoError(t, err)

	assert.True(t, v.Check(sample.String("*0000000000000000")))
	assert.True(t, v.Check(sample.String("*0101010101010101")))
	// Substring matches must not pass: anchoring is the point.
	assert.False(t, v.Check(sample.String("x*0000000000000000")))
	assert.False(t, v.Check(sample.String("*0000000000000000y")))
	assert.False(t, v.Check(sample.String("*00000000000000002")))
}

func TestPatternInvalidRegex(t *testing.T) {
	_, err := Pattern(`([`)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBadPattern)
	assert.True(t, core.IsConfigFault(err))
}

func TestDecimalVsIntegerDistinction(t *testing.T) {
	dec := Decimal()
	integer := Integer()

	assert.True(t, dec.Check(sample.String("3.14")))
	assert.True(t, dec.Check(sample.String("3")))
	assert.True(t, dec.Check(sample.String("-0.5")))
	assert.True(t, dec.Check(sample.String("0")))
	assert.False(t, dec.Check(sample.String("abc")))
	assert.False(t, dec.Check(sample.Null))

	assert.True(t, integer.Check(sample.String("3")))
	assert.True(t, integer.Check(sample.String("-12")))
	assert.True(t, integer.Check(sample.String("+4")))
	assert.False(t, integer.Check(sample.String("3.14")))
	assert.False(t, integer.Check(sample.String("abc")))
}

func TestFlagLengthValidity(t *testing.T) {
	v := Length(8, 17)

	assert.True(t, v.Check(sample.String("*0000000000000000"))) // 17 chars
	assert.True(t, v.Check(sample.String("*0000001")))          // 8 chars
	assert.False(t, v.Check(sample.String("*000000000")))       // 10 chars
	assert.False(t, v.Check(sample.Null))
}

func TestDateFormatCheck(t *testing.T) {
	v, err := Date("2006-01-02T15:04:05.999999Z")
	require.NoError(t, err)

	assert.True(t, v.Check(sample.String("2021-06-15T10:30:45.123456Z")))
	assert.True(t, v.Check(sample.String("2021-06-15T10:30:45.1Z")))
	assert.False(t, v.Check(sample.String("2021-06-15 10:30:45")))
	assert.False(t, v.Check(sample.String("15/06/2021")))
	assert.False(t, v.Check(sample.String("-9999999")))
}

func TestOrComposition(t *testing.T) {
	rng, err := Range(0, 9)
	require.NoError(t, err)
	fill, err := Pattern(`-9999999`)
	require.NoError(t, err)
	v := Or(rng, fill)

	assert.True(t, v.Check(sample.String("4.5")))
	assert.True(t, v.Check(sample.String("-9999999")))
	assert.False(t, v.Check(sample.String("15")))
	assert.False(t, v.Check(sample.String("abc")))
}

func TestAndComposition(t *testing.T) {
	rng, err := Range(0, 100)
	require.NoError(t, err)
	v := And(Integer(), rng)

	assert.True(t, v.Check(sample.String("42")))
	assert.False(t, v.Check(sample.String("42.5"))) // decimal, fails integer leg
	assert.False(t, v.Check(sample.String("200")))  // integer, out of range
}

func TestNestedComposition(t *testing.T) {
	rng, err := Range(0, 6000)
	require.NoError(t, err)
	fill, err := Pattern(`-9999999`)
	require.NoError(t, err)
	v := Or(And(Decimal(), rng), fill)

	assert.True(t, v.Check(sample.String("1234.5")))
	assert.True(t, v.Check(sample.String("-9999999")))
	assert.False(t, v.Check(sample.String("-12.0")))
	assert.False(t, v.Check(sample.String("no data")))
}

func TestOrFillEscape(t *testing.T) {
	rng, err := Range(0, 35)
	require.NoError(t, err)
	v := OrFill(rng)

	assert.True(t, v.Check(sample.String(sample.FillValue)))
	assert.True(t, v.Check(sample.String("20")))
	assert.False(t, v.Check(sample.String("99")))
}

func TestOrFillEscapesNumericFill(t *testing.T) {
	rng, err := Range(0, 42)
	require.NoError(t, err)
	v := OrFill(rng)

	// A numeric cell holding the sentinel must escape like the string
	// form; exponent rendering of the number would defeat the pattern.
	assert.True(t, v.Check(sample.Number(-9999999)))
	assert.False(t, v.Check(sample.Number(-9999998)))

	series := v.CheckSeries([]sample.Cell{
		sample.Number(-9999999),
		sample.Number(20),
		sample.Number(99),
	})
	assert.Equal(t, []bool{true, true, false}, series)
}

func TestLargeNumericCellsKeepPlainDigits(t *testing.T) {
	v := OneOf("2500000")
	assert.True(t, v.Check(sample.Number(2500000)))

	p, err := Pattern(`\d+`)
	require.NoError(t, err)
	assert.True(t, p.Check(sample.Number(81000000)))

	mode, ok := Mode([]sample.Cell{
		sample.Number(2500000),
		sample.String("2500000"),
		sample.Number(2500000),
	})
	require.True(t, ok)
	assert.Equal(t, sample.TypeNumber, mode.Type())
}

func TestModeFirstSeenTieBreak(t *testing.T) {
	cells := []sample.Cell{
		sample.String("b"),
		sample.String("a"),
		sample.String("b"),
		sample.String("a"),
	}
	mode, ok := Mode(cells)
	require.True(t, ok)
	// Two-way tie: the value first seen at the lowest row index wins.
	assert.Equal(t, "b", mode.Raw())

	_, ok = Mode(nil)
	assert.False(t, ok)
}

func TestModeEqualitySeries(t *testing.T) {
	v := ModeEquality()
	cells := []sample.Cell{
		sample.String("5"),
		sample.String("5"),
		sample.String("6"),
		sample.String("5"),
	}
	pass := v.CheckSeries(cells)
	assert.Equal(t, []bool{true, true, false, true}, pass)
}

func TestSeriesDetection(t *testing.T) {
	rng, err := Range(0, 1)
	require.NoError(t, err)

	assert.True(t, ModeEquality().Series())
	assert.True(t, Or(rng, ModeEquality()).Series())
	assert.False(t, Or(rng, Decimal()).Series())
}

func TestCheckSeriesMatchesCheckForElementValidators(t *testing.T) {
	rng, err := Range(0, 10)
	require.NoError(t, err)
	cells := []sample.Cell{
		sample.String("5"),
		sample.String("50"),
		sample.Null,
	}
	pass := rng.CheckSeries(cells)
	require.Len(t, pass, len(cells))
	for i, c := range cells {
		assert.Equal(t, rng.Check(c), pass[i], "row %d", i)
	}
}

func TestWithMessage(t *testing.T) {
	v := Decimal().WithMessage("custom")
	assert.Equal(t, "custom", v.Message())
	// The original stays untouched.
	assert.NotEqual(t, "custom", Decimal().Message())
}
