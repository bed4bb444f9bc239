/*
Package layout inspects the in-memory representation of Go values. It backs the
checks that a Storage[T] is represented exactly like T.

Comparing representations byte-for-byte is only meaningful for types without
padding: the contents of padding bytes are unspecified and a copy of a value is
free to not preserve them. Use HasPadding to decide whether Bytes can be
compared, and fall back to comparing sizes, alignments and offsets otherwise.

This package is intended to be used in tests only.
*/
package layout

import (
	"bytes"
	"reflect"
	"unsafe"
)

// Bytes returns the memory of *p as a byte slice. The slice aliases *p, so it
// reflects later writes to *p and must not outlive it.
func Bytes[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// Equal reports whether *a and *b have the same size and the same bytes.
func Equal[A, B any](a *A, b *B) bool {
	return unsafe.Sizeof(*a) == unsafe.Sizeof(*b) && bytes.Equal(Bytes(a), Bytes(b))
}

// HasPadding reports whether the representation of t contains bytes that do not
// belong to any of its components. Only structs introduce padding, but arrays of
// padded structs are padded too.
func HasPadding(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return t.Len() > 0 && HasPadding(t.Elem())
	case reflect.Struct:
		var end uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Offset != end || HasPadding(f.Type) {
				return true
			}
			end = f.Offset + f.Type.Size()
		}
		// trailing padding, either for alignment or after a final zero-size field
		return end != t.Size()
	default:
		return false
	}
}

// Shape describes the parts of a type's layout that do not depend on the value.
type Shape struct {
	Size    uintptr
	Align   int
	Offsets []uintptr // field offsets, flattened depth-first through structs
}

// ShapeOf returns the Shape of t.
//
// Two types with the same Shape and no padding are interchangeable in memory;
// for padded types, the same Shape is the strongest statement that can be made
// without looking at values.
func ShapeOf(t reflect.Type) Shape {
	s := Shape{Size: t.Size(), Align: t.Align()}
	s.Offsets = appendOffsets(s.Offsets, t, 0)
	return s
}

func appendOffsets(offsets []uintptr, t reflect.Type, base uintptr) []uintptr {
	if t.Kind() != reflect.Struct {
		return append(offsets, base)
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		offsets = appendOffsets(offsets, f.Type, base+f.Offset)
	}
	return offsets
}
