package model

import (
	"fmt"
	"time"
)

// Populate stores a value received from a database/sql driver into v.
//
// src is one of the driver value types: nil, int64, float64, bool, []byte,
// string or time.Time. Text is parsed according to the tag of v, so a DECIMAL
// delivered as "12.50" becomes a FixedPoint and a DATE delivered as
// "2024-01-31" becomes a Date. An int64 stored in a temporal cell is read as
// Unix seconds.
func Populate(v Value, src any) error {
	switch x := src.(type) {
	case nil:
		v.SetNull()
		return nil
	case int64:
		if v.Tag().IsTemporal() {
			return storeTime(v, time.Unix(x, 0).UTC(), TypeDateTime)
		}
		return storeNumeric(v, signedNumeric(x))
	case int:
		return Populate(v, int64(x))
	case int32:
		return Populate(v, int64(x))
	case uint64:
		return storeNumeric(v, unsignedNumeric(x))
	case float64:
		return storeNumeric(v, floatNumeric(x))
	case float32:
		return storeNumeric(v, numeric{kind: numFloat, f: float64(x), single: true})
	case bool:
		return storeNumeric(v, boolNumeric(x))
	case []byte:
		return storeBytes(v, x)
	case string:
		return storeText(v, x)
	case time.Time:
		return storeTime(v, x, TypeDateTime)
	case FixedPoint:
		return storeNumeric(v, fixedNumeric(x))
	default:
		return fmt.Errorf("%w: cannot populate %s from %T", ErrUnsupportedType, v.Tag(), src)
	}
}
