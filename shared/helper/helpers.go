package helper

import (
	"fmt"
)

// AssertType asserts raw to T.
// The error names both the expected and the actual dynamic type.
func AssertType[T any](raw any) (T, error) {
	val, ok := raw.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected type: want %T, got %T", zero, raw)
	}
	return val, nil
}

// MustAssertType is the panic-on-failure variant of AssertType.
// Use when failure means a broken internal invariant.
func MustAssertType[T any](raw any) T {
	val, err := AssertType[T](raw)
	if err != nil {
		panic(err)
	}
	return val
}
