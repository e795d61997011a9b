// Package optional provides a tri-state value for partial updates: a field can
// be absent, explicitly null, or set.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	stateAbsent state = iota
	stateNull
	statePresent
)

// Value holds an optional T. The zero Value is absent.
type Value[T any] struct {
	value T
	state state
}

// Of returns a present value.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, state: statePresent}
}

// Null returns an explicitly null value.
func Null[T any]() Value[T] {
	return Value[T]{state: stateNull}
}

// Get returns the value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == statePresent
}

// IsPresent reports whether a non-null value was supplied.
func (v Value[T]) IsPresent() bool { return v.state == statePresent }

// IsNull reports whether an explicit null was supplied.
func (v Value[T]) IsNull() bool { return v.state == stateNull }

// IsZero reports whether the value is absent. It makes `omitzero` skip absent fields.
func (v Value[T]) IsZero() bool { return v.state == stateAbsent }

// Any returns the held value, or nil when it is not present.
func (v Value[T]) Any() any {
	if v.state != statePresent {
		return nil
	}
	return v.value
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		v.value = zero
		v.state = stateNull
		return nil
	}

	if err := json.Unmarshal(data, &v.value); err != nil {
		return err
	}
	v.state = statePresent
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.state != statePresent {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
