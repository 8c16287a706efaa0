package pure

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid memoization config")

	// ErrTypeConstraint is matched by every *TypeConstraintError.
	ErrTypeConstraint = errors.New("type does not satisfy memoization constraint")

	// ErrPoisoned is matched by every *PoisonError.
	ErrPoisoned = errors.New("binding poisoned")
)

// ConfigError reports a non-positive cache size.
// It is returned before any binding exists.
type ConfigError struct {
	Name string
	Size int
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: size must be greater than 0, got %d", ErrConfig, e.Size)
	}
	return fmt.Sprintf("%v: %s: size must be greater than 0, got %d", ErrConfig, e.Name, e.Size)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// TypeConstraintError reports an argument or result type that cannot be memoized:
// arguments must be comparable, results must be duplicable.
type TypeConstraintError struct {
	Func     string
	Position string // e.g. "argument 0", "result 1", "signature"
	Type     string
	Reason   string
}

func (e *TypeConstraintError) Error() string {
	return fmt.Sprintf("%v: %s: %s %s: %s", ErrTypeConstraint, e.Func, e.Position, e.Type, e.Reason)
}

func (e *TypeConstraintError) Unwrap() error { return ErrTypeConstraint }

// PoisonError is the panic value raised by every access to a binding
// after a panic escaped while its lock was held.
type PoisonError struct {
	Binding string
	Cause   any
}

func (e *PoisonError) Error() string {
	if e.Binding == "" {
		return fmt.Sprintf("%v: %v", ErrPoisoned, e.Cause)
	}
	return fmt.Sprintf("%v: %s: %v", ErrPoisoned, e.Binding, e.Cause)
}

func (e *PoisonError) Unwrap() error { return ErrPoisoned }
