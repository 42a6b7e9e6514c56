package sqlcell

import (
	"fmt"

	"github.com/nao1215/sqlcell/domain/model"
)

// GetValue reads the cell as T.
//
// It fails with ErrTypeMismatch unless CanGet(o.Tag(), HostTag[T]()). A null
// cell yields the zero value of T; use GetValueOpt to tell null apart.
//
// Example:
//
//	price, err := sqlcell.GetValue[sqlcell.FixedPoint](cell)
//	flag, err := sqlcell.GetValue[string](bitCell) // "1" or "0"
func GetValue[T Host](o *ValuedObject) (T, error) {
	var out T
	err := GetValueInto(o, &out)
	return out, err
}

// GetValueInto reads the cell into *out. On error *out is left unchanged.
func GetValueInto[T Host](o *ValuedObject, out *T) error {
	if to := model.HostTag[T](); !model.CanGet(o.Tag(), to) {
		return newCellErrorContext("GetValue", o.infos).
			WithDetails(fmt.Sprintf("cannot read %s as %s", o.Tag(), to)).
			Error(ErrTypeMismatch)
	}
	var v T
	if err := model.ReadInto(o.value, &v); err != nil {
		return newCellErrorContext("GetValue", o.infos).Error(err)
	}
	*out = v
	return nil
}

// GetValueFast reads the cell into *out without consulting the compatibility
// matrix.
//
// The caller must guarantee CanGet(o.Tag(), HostTag[T]()). Builds with the
// sqlcell_debug tag panic when the precondition does not hold. Errors from the
// conversion itself are still returned, and *out is unspecified after one.
func GetValueFast[T Host](o *ValuedObject, out *T) error {
	if debugAssertions {
		if to := model.HostTag[T](); !model.CanGet(o.Tag(), to) {
			panic(fmt.Sprintf("sqlcell: GetValueFast reads %s as %s", o.Tag(), to))
		}
	}
	return model.ReadInto(o.value, out)
}

// GetValueOpt reads the cell as T, returning an empty Nullable for a null cell.
func GetValueOpt[T Host](o *ValuedObject) (Nullable[T], error) {
	if to := model.HostTag[T](); !model.CanGet(o.Tag(), to) {
		return None[T](), newCellErrorContext("GetValueOpt", o.infos).
			WithDetails(fmt.Sprintf("cannot read %s as %s", o.Tag(), to)).
			Error(ErrTypeMismatch)
	}
	if o.value.IsNull() {
		return None[T](), nil
	}
	v, err := model.ReadAs[T](o.value)
	if err != nil {
		return None[T](), newCellErrorContext("GetValueOpt", o.infos).Error(err)
	}
	return Some(v), nil
}

// SetValue stores v into the cell.
//
// It fails with ErrTypeMismatch unless CanSet(HostTag[T](), o.Tag()). Integer
// narrowing wraps like a Go conversion, floats stored into integer cells
// truncate toward zero, and character and binary payloads are cut to the
// length limit. A decimal that does not fit the declared precision fails with
// ErrPrecisionOverflow and leaves the cell unchanged.
func SetValue[T Host](o *ValuedObject, v T) error {
	if from := model.HostTag[T](); !model.CanSet(from, o.Tag()) {
		return newCellErrorContext("SetValue", o.infos).
			WithDetails(fmt.Sprintf("cannot store %s into %s", from, o.Tag())).
			Error(ErrTypeMismatch)
	}
	if err := model.WriteFrom(o.value, v); err != nil {
		return newCellErrorContext("SetValue", o.infos).Error(err)
	}
	return nil
}

// SetValueFast stores v without consulting the compatibility matrix.
//
// The caller must guarantee CanSet(HostTag[T](), o.Tag()). Builds with the
// sqlcell_debug tag panic when the precondition does not hold. Errors from the
// conversion itself, such as a decimal precision overflow, are still returned.
func SetValueFast[T Host](o *ValuedObject, v T) error {
	if debugAssertions {
		if from := model.HostTag[T](); !model.CanSet(from, o.Tag()) {
			panic(fmt.Sprintf("sqlcell: SetValueFast stores %s into %s", from, o.Tag()))
		}
	}
	return model.WriteFrom(o.value, v)
}
