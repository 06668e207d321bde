// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package vartype provides optional values for view state fields that may or may not
// be present, like the search marker or the postal code.
package vartype

import (
	"fmt"
)

// Variable holds a value of type T together with the information whether it was set.
// The zero value is an unset Variable.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable returns a Variable that is set to the given value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Reset clears the value and marks the Variable as unset.
func (v *Variable[T]) Reset() {
	var zero T
	v.value = zero
	v.isset = false
}

// Set assigns the value and marks the Variable as set.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// Value returns the stored value. For an unset Variable this is the zero value of T.
func (v Variable[T]) Value() T {
	return v.value
}

// Get returns the stored value and whether it is set.
func (v Variable[T]) Get() (T, bool) {
	return v.value, v.isset
}

// ValueOr returns the stored value or fallback if the Variable is unset.
func (v Variable[T]) ValueOr(fallback T) T {
	if !v.isset {
		return fallback
	}
	return v.value
}

// IsSet returns true if the Variable holds a value.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns the value formatted with fmt or an empty string if unset, so that an
// unset Variable never renders as a placeholder like "<nil>".
func (v Variable[T]) String() string {
	if !v.isset {
		return ""
	}
	return fmt.Sprint(v.value)
}
