package purefn

type args2[I1, I2 comparable] struct {
	i1 I1
	i2 I2
}

type args3[I1, I2, I3 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
}

type args4[I1, I2, I3, I4 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
}

// TableizeI1O1 memoizes a pure single-argument function.
//
// The returned function has the same signature as pureFn. A recursive pureFn
// should call the returned function, not itself:
//
//	var fib func(int) int
//	fib = purefn.TableizeI1O1(func(n int) int {
//		if n <= 1 {
//			return n
//		}
//		return fib(n-1) + fib(n-2)
//	}, purefn.WithSize(64))
//
// The signature is checked as Memoize checks it: an interface-typed argument
// or a result that shares mutable state panics here with a
// *pure.TypeConstraintError, and a non-positive size with a *pure.ConfigError.
// Float arguments are accepted, but a call with NaN is never cached.
func TableizeI1O1[I1 comparable, O1 any](
	pureFn func(I1) O1,
	opts ...Option,
) func(I1) O1 {
	b := mustBind[I1, O1](pureFn, opts)
	return func(i1 I1) O1 {
		return b.Call(i1, func() O1 {
			return pureFn(i1)
		})
	}
}

func TableizeI2O1[I1, I2 comparable, O1 any](
	pureFn func(I1, I2) O1,
	opts ...Option,
) func(I1, I2) O1 {
	b := mustBind[args2[I1, I2], O1](pureFn, opts)
	return func(i1 I1, i2 I2) O1 {
		return b.Call(args2[I1, I2]{i1, i2}, func() O1 {
			return pureFn(i1, i2)
		})
	}
}

func TableizeI3O1[I1, I2, I3 comparable, O1 any](
	pureFn func(I1, I2, I3) O1,
	opts ...Option,
) func(I1, I2, I3) O1 {
	b := mustBind[args3[I1, I2, I3], O1](pureFn, opts)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return b.Call(args3[I1, I2, I3]{i1, i2, i3}, func() O1 {
			return pureFn(i1, i2, i3)
		})
	}
}

func TableizeI4O1[I1, I2, I3, I4 comparable, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	opts ...Option,
) func(I1, I2, I3, I4) O1 {
	b := mustBind[args4[I1, I2, I3, I4], O1](pureFn, opts)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return b.Call(args4[I1, I2, I3, I4]{i1, i2, i3, i4}, func() O1 {
			return pureFn(i1, i2, i3, i4)
		})
	}
}
