package unsafestorage

import "cmp"

// Compare returns cmp.Compare of the values inside a and b.
//
// Storage does not change how values order: ties, and the placement of NaNs for
// floating-point T, are exactly those of cmp.Compare.
func Compare[T cmp.Ordered](a, b Storage[T]) int {
	return cmp.Compare(a.inner, b.inner)
}

// Less reports whether the value inside a is less than the value inside b, as
// cmp.Less does.
func Less[T cmp.Ordered](a, b Storage[T]) bool {
	return cmp.Less(a.inner, b.inner)
}

// CompareFunc compares the values inside a and b with compare. Use it for T that
// are ordered by a function rather than by operators, for example:
//
//	slices.SortFunc(cells, func(a, b unsafestorage.Storage[Version]) int {
//		return unsafestorage.CompareFunc(a, b, Version.Compare)
//	})
func CompareFunc[T any](a, b Storage[T], compare func(T, T) int) int {
	return compare(a.inner, b.inner)
}

// Equal reports whether a == b. It exists to be passed as a function value,
// such as to slices.EqualFunc.
func Equal[T comparable](a, b Storage[T]) bool {
	return a.inner == b.inner
}
