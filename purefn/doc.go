// Package purefn provides high-level memoization utilities for pure functions.
//
// Tableize is not just a utility to add memoization.
// Tableize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a bounded lookup table?"
//
// The centerpiece is the Tableize family of functions, which memoize pure function
// calls by their input values. These functions assume purity: not just determinism,
// but referential transparency.
//
// Features:
//   - TableizeI1O1 to TableizeI4O2: typed, generic memoizers for common arities.
//     The compiler enforces the comparable constraint on arguments, and the wrap
//     itself rejects interface arguments and results that share mutable state.
//   - Memoize: a reflective memoizer for any arity up to MaxArity, which checks
//     argument and result types once, when the function is wrapped.
//   - One LRU-bounded binding per function (pure.Binding), sized with WithSize
//     (default pure.DefaultSize), optionally shared through a pure.Registry.
//
// Every call takes the binding's lock only to look up and to store; the body
// runs unlocked, so recursive functions work. Two goroutines missing on the same
// arguments at once both run the body, and the later store wins.
//
// Results implementing Clone() T are copied on every store and every hit,
// so callers never share the cached copy.
//
// Arguments holding a floating-point NaN never compare equal to themselves,
// so such calls always run the body and are never cached.
//
// See tableize_test.go and tableize_bench_test.go for usage and benchmarks.
//
// WARNING: Do not use Tableize on impure functions (e.g., those depending on time, I/O, etc).
package purefn
