package sqlcell

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCell(t *testing.T, name, definition string) *ValuedObject {
	t.Helper()
	infos, err := ParseInfos(name, definition)
	require.NoError(t, err)
	cell, err := NewValuedObject(infos)
	require.NoError(t, err)
	return cell
}

func TestGetValue_BitAsString(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "active", "BIT")
	require.True(t, CanGet(TypeBit, TypeVarChar))
	require.NoError(t, SetValue(cell, true))

	got, err := GetValue[string](cell)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	require.NoError(t, SetValue(cell, false))
	got, err = GetValue[string](cell)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestGetValue_Mismatch(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "born", "DATE")
	require.NoError(t, SetValue(cell, Date{Year: 2020, Month: time.February, Day: 29}))

	var out int32 = 7
	err := GetValueInto(cell, &out)
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "column: born")
	assert.Equal(t, int32(7), out, "output must be untouched on error")

	_, err = GetValue[float64](cell)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestGetValue_Conversions(t *testing.T) {
	t.Parallel()

	t.Run("mediumint widens", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "MEDIUMINT")
		require.NoError(t, SetValue(cell, ToInt24(-42)))
		got, err := GetValue[int64](cell)
		require.NoError(t, err)
		assert.Equal(t, int64(-42), got)

		_, err = GetValue[int16](cell)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("decimal as float", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "price", "DECIMAL(10,2)")
		fp, err := ParseFixedPoint("19.90", 10, 2)
		require.NoError(t, err)
		require.NoError(t, SetValue(cell, fp))

		f, err := GetValue[float64](cell)
		require.NoError(t, err)
		assert.InDelta(t, 19.9, f, 1e-9)

		s, err := GetValue[string](cell)
		require.NoError(t, err)
		assert.Equal(t, "19.90", s)
	})

	t.Run("datetime as date", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "at", "DATETIME")
		require.NoError(t, SetValue(cell, time.Date(2024, time.May, 6, 7, 8, 9, 0, time.UTC)))
		d, err := GetValue[Date](cell)
		require.NoError(t, err)
		assert.Equal(t, Date{Year: 2024, Month: time.May, Day: 6}, d)
	})

	t.Run("null reads zero", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "INTEGER")
		got, err := GetValue[int32](cell)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestGetValueOpt(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "n", "BIGINT")

	opt, err := GetValueOpt[int64](cell)
	require.NoError(t, err)
	assert.False(t, opt.IsSet())

	require.NoError(t, SetValue(cell, int64(12)))
	opt, err = GetValueOpt[int64](cell)
	require.NoError(t, err)
	v, err := opt.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	_, err = GetValueOpt[bool](cell)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSetValue(t *testing.T) {
	t.Parallel()

	t.Run("narrowing wraps", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "TINYINT")
		require.NoError(t, SetValue(cell, int32(300)))
		got, err := GetValue[int8](cell)
		require.NoError(t, err)
		assert.Equal(t, int8(44), got)
	})

	t.Run("string into integer rejected", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "INTEGER")
		assert.ErrorIs(t, SetValue(cell, "12"), ErrTypeMismatch)
		assert.True(t, cell.IsNull())
	})

	t.Run("decimal overflow keeps cell", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "price", "DECIMAL(3,0)")
		small, err := NewFixedPoint(5, 3, 0)
		require.NoError(t, err)
		require.NoError(t, SetValue(cell, small))

		big, err := NewFixedPoint(99999, 5, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, SetValue(cell, big), ErrPrecisionOverflow)

		got, err := GetValue[FixedPoint](cell)
		require.NoError(t, err)
		assert.Equal(t, "5", got.String())
	})

	t.Run("varchar truncated to limit", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "code", "VARCHAR(3)")
		require.NoError(t, SetValue(cell, "abcdef"))
		got, err := GetValue[string](cell)
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})
}

func TestFastAccessors(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "n", "SMALLINT UNSIGNED")
	require.NoError(t, SetValueFast(cell, uint16(65535)))

	var got uint32
	require.NoError(t, GetValueFast(cell, &got))
	assert.Equal(t, uint32(65535), got)

	text := newCell(t, "s", "VARCHAR(8)")
	require.NoError(t, SetValueFast(text, "12x"))
	var n int32
	assert.Error(t, GetValueFast(text, &n))
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	t.Parallel()

	a, err := NewFixedPoint(996, 3, 0)
	require.NoError(t, err)
	b, err := NewFixedPoint(3, 3, 0)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(999), sum.Raw())
	assert.Equal(t, 3, sum.Precision())
	assert.Equal(t, 0, sum.Scale())

	c, err := NewFixedPoint(4, 3, 0)
	require.NoError(t, err)
	_, err = a.Add(c)
	require.ErrorIs(t, err, ErrPrecisionOverflow)

	_, err = ParseFixedPoint("123.456789", 5, 2)
	assert.ErrorIs(t, err, ErrPrecisionOverflow)
}

func TestInt24_ShiftWraps(t *testing.T) {
	t.Parallel()

	// 0x7FFFFF<<2 is 0x1FFFFFC; its low 24 bits 0xFFFFFC read as -4
	assert.Equal(t, int32(-4), ToInt24(0x7FFFFF).Shl(2).Int32())
	assert.Equal(t, int32(-8), ToInt24(0x7FFFFE).Shl(2).Int32())
	assert.Equal(t, int32(MinInt24), ToInt24(MaxInt24).Add(ToInt24(1)).Int32())
}

// Tests below install the process-wide translator and must not run in parallel.

func TestWithFaultTranslator_DivisionByZero(t *testing.T) {
	err := WithFaultTranslator(func() error {
		_, err := ToInt24(333).Div(ToInt24(0))
		return err
	})
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.False(t, FaultTranslatorInstalled())
}

var quotientSink int

func TestWithFaultTranslator_RecoversRuntimeDivide(t *testing.T) {
	zero := 0
	err := WithFaultTranslator(func() error {
		quotientSink = 10 / zero
		return nil
	})
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.False(t, FaultTranslatorInstalled())
}

func TestWithFaultTranslator_PropagatesOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = WithFaultTranslator(func() error { panic("boom") })
	})
	assert.False(t, FaultTranslatorInstalled())
}

func TestWithFaultTranslator_Success(t *testing.T) {
	var q Int24
	err := WithFaultTranslator(func() error {
		assert.True(t, FaultTranslatorInstalled())
		var err error
		q, err = ToInt24(333).Div(ToInt24(3))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int32(111), q.Int32())
}

func TestWithFaultTranslator_OverlappingScopes(t *testing.T) {
	firstIn, secondIn, firstOut := make(chan struct{}), make(chan struct{}), make(chan struct{})
	errs := make(chan error, 2)

	go func() {
		errs <- WithFaultTranslator(func() error {
			close(firstIn)
			<-secondIn
			return nil
		})
		close(firstOut)
	}()
	go func() {
		<-firstIn
		errs <- WithFaultTranslator(func() error {
			close(secondIn)
			<-firstOut
			_, err := ToInt24(1).Div(ToInt24(0))
			if !errors.Is(err, ErrDivisionByZero) {
				return fmt.Errorf("translator lost after the first scope returned: %v", err)
			}
			return nil
		})
	}()

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.False(t, FaultTranslatorInstalled())
}
