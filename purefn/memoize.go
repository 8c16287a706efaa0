package purefn

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"github.com/on-the-ground/purememo/pure"
	"github.com/on-the-ground/purememo/shared/helper"
)

// MaxArity is the largest number of arguments Memoize accepts.
const MaxArity = 8

type argsKey [MaxArity]any

type resultSet struct {
	values []reflect.Value
	clone  []bool // per result: has a Clone method returning its own type
}

func (r resultSet) Clone() resultSet {
	out := make([]reflect.Value, len(r.values))
	for i, v := range r.values {
		if r.clone[i] {
			out[i] = v.MethodByName("Clone").Call(nil)[0]
		} else {
			out[i] = v
		}
	}
	return resultSet{values: out, clone: r.clone}
}

// Memoize wraps any pure function of up to MaxArity arguments.
//
// The signature is checked once, here: every argument type must be comparable
// and free of interfaces, and there must be at least one result, each of which
// implements Clone or holds no maps, slices, channels or funcs. All violations
// are reported together as *pure.TypeConstraintError values combined with
// multierr; the returned function is never produced in that case.
func Memoize[F any](fn F, opts ...Option) (F, error) {
	var zero F

	fv := reflect.ValueOf(fn)
	cfg := newConfig(fv, opts)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return zero, &pure.TypeConstraintError{
			Func:     cfg.name,
			Position: "signature",
			Type:     fmt.Sprintf("%T", fn),
			Reason:   "not a non-nil function",
		}
	}
	ft := fv.Type()
	if err := CheckSignature(cfg.name, ft); err != nil {
		return zero, err
	}

	b, err := bind[argsKey, resultSet](cfg)
	if err != nil {
		return zero, err
	}

	clone := make([]bool, ft.NumOut())
	for i := range clone {
		clone[i] = hasClone(ft.Out(i))
	}

	wrapped := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		var key argsKey
		for i, arg := range args {
			key[i] = arg.Interface()
		}
		return b.Call(key, func() resultSet {
			return resultSet{values: fv.Call(args), clone: clone}
		}).values
	})
	return helper.MustAssertType[F](wrapped.Interface()), nil
}

// MustMemoize is the panic-on-failure variant of Memoize.
func MustMemoize[F any](fn F, opts ...Option) F {
	wrapped, err := Memoize(fn, opts...)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// CheckSignature reports every reason a function of type ft cannot be memoized.
func CheckSignature(name string, ft reflect.Type) error {
	if ft.Kind() != reflect.Func {
		return &pure.TypeConstraintError{Func: name, Position: "signature", Type: ft.String(), Reason: "not a function"}
	}

	var errs error
	if ft.IsVariadic() {
		errs = multierr.Append(errs, &pure.TypeConstraintError{
			Func: name, Position: "signature", Type: ft.String(), Reason: "variadic functions cannot be memoized",
		})
	}
	if ft.NumIn() > MaxArity {
		errs = multierr.Append(errs, &pure.TypeConstraintError{
			Func: name, Position: "signature", Type: ft.String(),
			Reason: fmt.Sprintf("%d arguments exceed the maximum of %d", ft.NumIn(), MaxArity),
		})
	}
	for i := 0; i < ft.NumIn(); i++ {
		if reason, ok := hashable(ft.In(i)); !ok {
			errs = multierr.Append(errs, &pure.TypeConstraintError{
				Func: name, Position: fmt.Sprintf("argument %d", i), Type: ft.In(i).String(), Reason: reason,
			})
		}
	}
	if ft.NumOut() == 0 {
		errs = multierr.Append(errs, &pure.TypeConstraintError{
			Func: name, Position: "signature", Type: ft.String(), Reason: "function has no results",
		})
	}
	for i := 0; i < ft.NumOut(); i++ {
		if reason, ok := duplicable(ft.Out(i)); !ok {
			errs = multierr.Append(errs, &pure.TypeConstraintError{
				Func: name, Position: fmt.Sprintf("result %d", i), Type: ft.Out(i).String(), Reason: reason,
			})
		}
	}
	return errs
}

// hashable reports whether t can be part of a cache key without any risk of
// a hash panic at call time.
func hashable(t reflect.Type) (string, bool) {
	if !t.Comparable() {
		return "not comparable", false
	}
	switch t.Kind() {
	case reflect.Interface:
		return "interface values may hold non-comparable types", false
	case reflect.Array:
		return hashable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if reason, ok := hashable(f.Type); !ok {
				return fmt.Sprintf("field %s: %s", f.Name, reason), false
			}
		}
	}
	return "", true
}

// duplicable reports whether values of t can be handed to many callers
// without sharing mutable state.
func duplicable(t reflect.Type) (string, bool) {
	if hasClone(t) {
		return "", true
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice:
		return fmt.Sprintf("%s shares mutable state and has no Clone method", t.Kind()), false
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("%s cannot be duplicated", t.Kind()), false
	case reflect.Array:
		return duplicable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if reason, ok := duplicable(f.Type); !ok {
				return fmt.Sprintf("field %s: %s", f.Name, reason), false
			}
		}
	}
	return "", true
}

// hasClone reports whether t has an exported `Clone() t` method.
func hasClone(t reflect.Type) bool {
	m, ok := t.MethodByName("Clone")
	if !ok {
		return false
	}
	in := 1 // receiver
	if t.Kind() == reflect.Interface {
		in = 0
	}
	return m.Type.NumIn() == in && m.Type.NumOut() == 1 && m.Type.Out(0) == t
}
