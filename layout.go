package unsafestorage

import (
	"iter"
	"unsafe"
)

// The functions below reinterpret memory between T and Storage[T]. They are
// sound only because a Storage[T] is laid out exactly like a T (see Storage).

// UnsafeWrapSlice returns s viewed as a slice of Storage, without copying. The
// result shares the backing array of s and has the same length and capacity.
//
// The caller claims that every element of s satisfies the invariants, as if
// NewUnsafe had been called on each. Writes through s after the call bypass
// Storage entirely and carry the obligations of UnsafeMut.
func UnsafeWrapSlice[T any](s []T) []Storage[T] {
	if s == nil {
		return nil
	}
	return unsafe.Slice((*Storage[T])(unsafe.Pointer(unsafe.SliceData(s))), cap(s))[:len(s)]
}

// UnsafeUnwrapSlice returns s viewed as a slice of T, without copying. The result
// shares the backing array of s and has the same length and capacity.
//
// Every element of the result is as exposed as the pointer returned by
// UnsafeMut: writes must leave each element valid. Use Values to only read.
func UnsafeUnwrapSlice[T any](s []Storage[T]) []T {
	if s == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(s))), cap(s))[:len(s)]
}

// UnsafeWrapPointer returns p viewed as a pointer to Storage. Both pointers
// address the same memory.
//
// The caller claims that *p satisfies the invariants, as if NewUnsafe(*p) had
// been called, and that nothing writes through p afterwards without upholding
// them.
func UnsafeWrapPointer[T any](p *T) *Storage[T] {
	return (*Storage[T])(unsafe.Pointer(p))
}

// Values returns an iterator over copies of the values inside s, in order.
func Values[T any](s []Storage[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range s {
			if !yield(s[i].inner) {
				return
			}
		}
	}
}
