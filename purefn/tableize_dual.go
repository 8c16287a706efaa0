package purefn

import "github.com/on-the-ground/purememo/pure"

// result holds both outputs of a dual-output function as one cached value.
type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

// Clone duplicates each output that implements pure.Cloner.
func (r result[O1, O2]) Clone() result[O1, O2] {
	return result[O1, O2]{
		O1: pure.Duplicate(r.O1),
		O2: pure.Duplicate(r.O2),
	}
}

// TableizeI1O2 memoizes a pure function returning two values,
// such as a (value, error) pair. Both values are cached together.
func TableizeI1O2[I1 comparable, O1, O2 any](
	pureFn func(I1) (O1, O2),
	opts ...Option,
) func(I1) (O1, O2) {
	tableized := TableizeI1O1(func(i1 I1) result[O1, O2] {
		v1, v2 := pureFn(i1)
		return result[O1, O2]{O1: v1, O2: v2}
	}, identify(pureFn, opts)...)
	return func(i1 I1) (O1, O2) {
		res := tableized(i1)
		return res.O1, res.O2
	}
}

func TableizeI2O2[I1, I2 comparable, O1, O2 any](
	pureFn func(I1, I2) (O1, O2),
	opts ...Option,
) func(I1, I2) (O1, O2) {
	tableized := TableizeI2O1(func(i1 I1, i2 I2) result[O1, O2] {
		v1, v2 := pureFn(i1, i2)
		return result[O1, O2]{O1: v1, O2: v2}
	}, identify(pureFn, opts)...)
	return func(i1 I1, i2 I2) (O1, O2) {
		res := tableized(i1, i2)
		return res.O1, res.O2
	}
}

func TableizeI3O2[I1, I2, I3 comparable, O1, O2 any](
	pureFn func(I1, I2, I3) (O1, O2),
	opts ...Option,
) func(I1, I2, I3) (O1, O2) {
	tableized := TableizeI3O1(func(i1 I1, i2 I2, i3 I3) result[O1, O2] {
		v1, v2 := pureFn(i1, i2, i3)
		return result[O1, O2]{O1: v1, O2: v2}
	}, identify(pureFn, opts)...)
	return func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		res := tableized(i1, i2, i3)
		return res.O1, res.O2
	}
}

func TableizeI4O2[I1, I2, I3, I4 comparable, O1, O2 any](
	pureFn func(I1, I2, I3, I4) (O1, O2),
	opts ...Option,
) func(I1, I2, I3, I4) (O1, O2) {
	tableized := TableizeI4O1(func(i1 I1, i2 I2, i3 I3, i4 I4) result[O1, O2] {
		v1, v2 := pureFn(i1, i2, i3, i4)
		return result[O1, O2]{O1: v1, O2: v2}
	}, identify(pureFn, opts)...)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2) {
		res := tableized(i1, i2, i3, i4)
		return res.O1, res.O2
	}
}

// identify pins the function identity and signature to pureFn itself
// rather than the adapter closure that the dual variants wrap.
func identify(pureFn any, opts []Option) []Option {
	return append([]Option{wraps(pureFn)}, opts...)
}
