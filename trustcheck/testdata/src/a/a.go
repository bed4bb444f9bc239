package a

import (
	unsafestorage "github.com/andrewgazelka/unsafe-storage"
)

var table = []string{"a", "b", "c"}

// invariant: 0 is a valid index into table.
var first = unsafestorage.NewUnsafe(0)

var undocumented = unsafestorage.NewUnsafe(1) // want `NewUnsafe is trust-marked`

func plainRead() int {
	return first.Inner() + len(table)
}

func above() unsafestorage.Storage[int] {
	// invariant: 2 < len(table).
	return unsafestorage.NewUnsafe(2)
}

func trailing() unsafestorage.Storage[int] {
	return unsafestorage.NewUnsafe(1) // invariant: 1 < len(table).
}

func missing() unsafestorage.Storage[int] {
	return unsafestorage.NewUnsafe(3) // want `NewUnsafe is trust-marked`
}

func explicitInstantiation() unsafestorage.Storage[int] {
	return unsafestorage.NewUnsafe[int](0) // want `NewUnsafe is trust-marked`
}

func detached() unsafestorage.Storage[int] {
	// invariant: this comment is separated from the call by a blank line.

	return unsafestorage.NewUnsafe(0) // want `NewUnsafe is trust-marked`
}

func continuation() []unsafestorage.Storage[int] {
	// invariant: both values are valid indexes.
	return []unsafestorage.Storage[int]{
		unsafestorage.NewUnsafe(0),
		unsafestorage.NewUnsafe(1),
	}
}

func trailingPrevious() unsafestorage.Storage[int] {
	x := 1 // invariant: x is one.
	return unsafestorage.NewUnsafe(x) // want `NewUnsafe is trust-marked`
}

func functionValues() int {
	mk := unsafestorage.NewUnsafe[int] // want `NewUnsafe is trust-marked`
	s := mk(99)
	mut := s.UnsafeMut // want `UnsafeMut is trust-marked`
	*mut() = 99
	update := (*unsafestorage.Storage[int]).UnsafeUpdate // want `UnsafeUpdate is trust-marked`
	update(&s, func(i *int) { *i = 98 })
	wrap := []func([]int) []unsafestorage.Storage[int]{
		unsafestorage.UnsafeWrapSlice[int], // want `UnsafeWrapSlice is trust-marked`
	}
	return s.Inner() + len(wrap)
}

func documentedFunctionValue() unsafestorage.Storage[int] {
	// invariant: mk only ever wraps 0, a valid index.
	mk := unsafestorage.NewUnsafe[int]
	return mk(0)
}

func parenthesized() unsafestorage.Storage[int] {
	return (unsafestorage.NewUnsafe[int])(0) // want `NewUnsafe is trust-marked`
}

func mutation(s *unsafestorage.Storage[int]) {
	*s.UnsafeMut() = 5 // want `UnsafeMut is trust-marked`

	// invariant: the modulo keeps the index in range.
	*s.UnsafeMut() = 5 % len(table)

	s.UnsafeUpdate(func(i *int) { *i = 0 }) // want `UnsafeUpdate is trust-marked`
}

func closures(s *unsafestorage.Storage[int]) {
	// invariant: the update below resets to a valid index.
	s.UnsafeUpdate(func(i *int) {
		*i = 0
		*s.UnsafeMut() = 1 // want `UnsafeMut is trust-marked`
	})
}

func slices(values []int) {
	_ = unsafestorage.UnsafeWrapSlice(values) // want `UnsafeWrapSlice is trust-marked`
	_ = unsafestorage.Values(unsafestorage.UnsafeWrapSlice(values)) // want `UnsafeWrapSlice is trust-marked`
}

// reset returns a cursor at the start of table.
//
// invariant: every Storage created here holds 0, which indexes the non-empty
// table.
func reset() (unsafestorage.Storage[int], unsafestorage.Storage[int]) {
	a := unsafestorage.NewUnsafe(0)
	b := unsafestorage.NewUnsafe(0)
	return a, b
}

func otherNewUnsafe() int {
	return NewUnsafe(1)
}

// NewUnsafe is not the trust-marked constructor: it lives in another package.
func NewUnsafe(i int) int { return i }
