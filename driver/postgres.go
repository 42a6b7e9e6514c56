package driver

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
)

var bigTen = big.NewInt(10)

// FixedPointFromNumeric converts a PostgreSQL NUMERIC to DECIMAL(precision,
// scale). Digits below the scale are truncated toward zero, as ParseFixedPoint
// does with text. NULL, NaN and infinities are rejected with ErrInvalidNumeric.
func FixedPointFromNumeric(n pgtype.Numeric, precision, scale int) (sqlcell.FixedPoint, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return sqlcell.FixedPoint{}, ErrInvalidNumeric
	}
	if err := model.ValidatePrecision(precision, scale); err != nil {
		return sqlcell.FixedPoint{}, err
	}

	raw := new(big.Int)
	if n.Int != nil {
		raw.Set(n.Int)
	}

	// raw is n.Int × 10^(Exp+scale)
	shift := int64(n.Exp) + int64(scale)
	factor := new(big.Int).Exp(bigTen, big.NewInt(abs(shift)), nil)
	digits := fractionDigits(n)
	switch {
	case shift >= 0:
		raw.Mul(raw, factor)
	case digits > precision:
		return sqlcell.FixedPoint{}, fmt.Errorf("%w: NUMERIC has %d fractional digits, DECIMAL(%d,%d) allows %d",
			sqlcell.ErrPrecisionOverflow, digits, precision, scale, precision)
	default:
		raw.Quo(raw, factor)
	}

	if !raw.IsInt64() {
		return sqlcell.FixedPoint{}, fmt.Errorf("%w: NUMERIC does not fit DECIMAL(%d,%d)", sqlcell.ErrPrecisionOverflow, precision, scale)
	}
	return model.NewFixedPoint(raw.Int64(), precision, scale)
}

// fractionDigits counts the fractional digits of n, ignoring trailing zeros.
func fractionDigits(n pgtype.Numeric) int {
	if n.Exp >= 0 || n.Int == nil || n.Int.Sign() == 0 {
		return 0
	}
	digits := int(-n.Exp)
	m := new(big.Int).Abs(n.Int)
	var rem big.Int
	for digits > 0 {
		q, _ := new(big.Int).QuoRem(m, bigTen, &rem)
		if rem.Sign() != 0 {
			break
		}
		m = q
		digits--
	}
	return digits
}

// NumericFromFixedPoint converts a decimal to a PostgreSQL NUMERIC with the
// same digits and scale.
func NumericFromFixedPoint(fp sqlcell.FixedPoint) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   big.NewInt(fp.Raw()),
		Exp:   -int32(fp.Scale()),
		Valid: true,
	}
}

// ScanNumeric stores a NUMERIC into a cell of any numeric kind. DECIMAL
// cells keep the exact digits; other kinds go through the decimal text.
func ScanNumeric(cell *sqlcell.ValuedObject, n pgtype.Numeric) error {
	if !n.Valid {
		cell.SetNull()
		return nil
	}
	infos := cell.Infos()
	if infos.Tag() == model.TypeFixedPoint {
		fp, err := FixedPointFromNumeric(n, infos.Precision(), infos.Scale())
		if err != nil {
			return err
		}
		return sqlcell.SetValue(cell, fp)
	}

	value, err := n.Value()
	if err != nil {
		return fmt.Errorf("failed to read numeric: %w", err)
	}
	return cell.Scan(value)
}

// NumericValue returns the NUMERIC form of a DECIMAL cell. NULL gives an
// invalid Numeric.
func NumericValue(cell *sqlcell.ValuedObject) (pgtype.Numeric, error) {
	if cell.IsNull() {
		return pgtype.Numeric{}, nil
	}
	fp, err := sqlcell.GetValue[sqlcell.FixedPoint](cell)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	return NumericFromFixedPoint(fp), nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
