package sqlcell

// Nullable is an optional value: either a T or nothing.
// The zero value is empty.
type Nullable[T any] struct {
	value T
	set   bool
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// None returns an empty Nullable.
func None[T any]() Nullable[T] {
	return Nullable[T]{}
}

// IsSet reports whether n holds a value.
func (n Nullable[T]) IsSet() bool {
	return n.set
}

// Value returns the held value or ErrValueNotSet.
func (n Nullable[T]) Value() (T, error) {
	if !n.set {
		var zero T
		return zero, ErrValueNotSet
	}
	return n.value, nil
}

// ValueOr returns the held value, or def when n is empty.
func (n Nullable[T]) ValueOr(def T) T {
	if !n.set {
		return def
	}
	return n.value
}
