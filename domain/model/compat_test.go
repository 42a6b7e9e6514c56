package model

import (
	"math"
	"testing"
)

func TestCompat_Totality(t *testing.T) {
	t.Parallel()

	tags := append(AllTypeTags(), TypeTag(-1), typeTagCount, TypeTag(1000))
	for _, from := range tags {
		for _, to := range tags {
			set := CanSet(from, to)
			get := CanGet(from, to)

			switch {
			case !from.IsValid() || !to.IsValid():
				if set || get {
					t.Errorf("invalid pair (%s, %s) must be incompatible", from, to)
				}
			case from == TypeNull || to == TypeNull:
				if set || get {
					t.Errorf("NULL pair (%s, %s) must be incompatible", from, to)
				}
			case from == to:
				if !set || !get {
					t.Errorf("identical pair (%s, %s) must be compatible", from, to)
				}
			}
		}
	}
}

func TestCanSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to TypeTag
		expected bool
	}{
		{TypeBit, TypeSInt64, true},
		{TypeUInt64, TypeBit, true},
		{TypeSInt64, TypeSInt8, true},
		{TypeSInt8, TypeUInt64, true},
		{TypeSInt24, TypeFloat32, true},
		{TypeUInt64, TypeFloat64, true},
		{TypeBit, TypeFloat64, false},
		{TypeFloat64, TypeFloat32, true},
		{TypeFloat32, TypeSInt32, false},
		{TypeFloat64, TypeFixedPoint, false},
		{TypeFixedPoint, TypeFloat64, true},
		{TypeFixedPoint, TypeSInt64, false},
		{TypeSInt64, TypeFixedPoint, false},
		{TypeVarChar, TypeNText, true},
		{TypeNChar, TypeChar, true},
		{TypeVarChar, TypeSInt32, false},
		{TypeVarChar, TypeVarBinary, false},
		{TypeDate, TypeDateTime, true},
		{TypeDate, TypeTime, false},
		{TypeDateTime, TypeDate, true},
		{TypeDateTime, TypeTime, true},
		{TypeTime, TypeDateTime, false},
		{TypeBlob, TypeBinary, true},
		{TypeBinary, TypeVarChar, false},
		{TypeSInt32, TypeVarChar, false},
	}

	for _, tt := range tests {
		if got := CanSet(tt.from, tt.to); got != tt.expected {
			t.Errorf("CanSet(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestCanGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to TypeTag
		expected bool
	}{
		{TypeBit, TypeSInt8, true},
		{TypeBit, TypeUInt64, true},
		{TypeBit, TypeFloat32, true},
		{TypeBit, TypeVarChar, true},
		{TypeSInt8, TypeBit, true},
		{TypeUInt8, TypeBit, true},
		{TypeSInt16, TypeBit, false},
		{TypeSInt8, TypeSInt64, true},
		{TypeSInt64, TypeSInt32, false},
		{TypeUInt8, TypeSInt16, true},
		{TypeUInt16, TypeSInt16, false},
		{TypeUInt24, TypeSInt32, true},
		{TypeSInt8, TypeUInt64, false},
		{TypeUInt32, TypeUInt64, true},
		{TypeSInt24, TypeFloat32, true},
		{TypeSInt32, TypeFloat32, false},
		{TypeUInt32, TypeFloat64, true},
		{TypeSInt64, TypeFloat64, false},
		{TypeFloat32, TypeFloat64, true},
		{TypeFloat64, TypeFloat32, false},
		{TypeFloat64, TypeSInt64, false},
		{TypeFixedPoint, TypeFloat64, true},
		{TypeFixedPoint, TypeVarChar, true},
		{TypeFixedPoint, TypeSInt64, false},
		{TypeSInt64, TypeNVarChar, true},
		{TypeDate, TypeVarChar, true},
		{TypeVarChar, TypeSInt64, false},
		{TypeText, TypeVarBinary, true},
		{TypeNText, TypeChar, true},
		{TypeBlob, TypeVarChar, false},
		{TypeBinary, TypeBlob, true},
		{TypeDateTime, TypeDate, true},
		{TypeDateTime, TypeTime, true},
		{TypeDate, TypeDateTime, true},
		{TypeTime, TypeDateTime, false},
		{TypeDate, TypeTime, false},
	}

	for _, tt := range tests {
		if got := CanGet(tt.from, tt.to); got != tt.expected {
			t.Errorf("CanGet(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestCanGet_IntegersAreLossless(t *testing.T) {
	t.Parallel()

	bounds := func(tag TypeTag) (lo, hi float64) {
		w := tag.BitWidth()
		if tag.IsSigned() {
			return -math.Ldexp(1, w-1), math.Ldexp(1, w-1) - 1
		}
		return 0, math.Ldexp(1, w) - 1
	}

	for _, from := range AllTypeTags() {
		if !from.IsInteger() {
			continue
		}
		flo, fhi := bounds(from)
		for _, to := range AllTypeTags() {
			if !to.IsInteger() || !CanGet(from, to) {
				continue
			}
			tlo, thi := bounds(to)
			if flo < tlo || fhi > thi {
				t.Errorf("CanGet(%s, %s) is true but the range does not fit", from, to)
			}
		}
	}
}
