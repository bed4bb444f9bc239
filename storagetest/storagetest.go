/*
Package storagetest provides a suite of tests that assess whether
[unsafestorage.Storage] is transparent over a specific type.

Code generators that wrap their own types in a Storage should run the suite for
each type they wrap, with a handful of representative values (include values
that compare equal, and for ordered types, values that tie):

	func TestStorage(t *testing.T) {
		storagetest.Run(t, Index(0), Index(3), Index(3), Index(9))
	}

For types ordered by operators, call RunOrdered instead; it runs everything Run
does and also checks ordering:

	func TestStorage(t *testing.T) {
		storagetest.RunOrdered(t, "b", "a", "a", "")
	}

The checks in this suite cover the properties callers depend on:

  - A value read back from a new Storage equals the value it was created with.
  - A Storage is laid out exactly like its value, byte for byte when the type
    has no padding.
  - Slices of values and slices of Storage reinterpret into each other in place.
  - Equality and hashing of a Storage are those of its value.
  - The zero Storage holds the zero value.
  - Writes through UnsafeMut and UnsafeUpdate are the sole resulting state.
  - Ordering of a Storage is that of its value (RunOrdered only).

Every value is checked against every other value, so keep the list short.
*/
package storagetest

import (
	"cmp"
	"fmt"
	"hash/maphash"
	"reflect"
	"runtime"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"

	unsafestorage "github.com/andrewgazelka/unsafe-storage"
	"github.com/andrewgazelka/unsafe-storage/internal/layout"
)

// A check returns unexpected problems with the given values. Each check is run
// once, as its own subtest, with all values passed to Run.
type check[T comparable] struct {
	// Subtest name.
	name string
	// A path leading to the check's file and line in the source code.
	location string
	// The check itself; an empty slice means no problems.
	fn func(values []T) (problems []string)
}

// Run checks that Storage[T] is transparent over T, using the given values as
// samples.
//
// Every value must equal itself; Run fails the test immediately when given a
// floating-point NaN (or a struct holding one), or no values at all. For an
// interface type T, every value must also hold a comparable dynamic type: an
// interface holding a slice, map or func fails the test instead of panicking.
func Run[T comparable](t *testing.T, values ...T) {
	t.Helper()
	run(t, values, checks[T]())
}

// RunOrdered checks everything Run does, and that Storage[T] orders exactly as T
// does.
func RunOrdered[T cmp.Ordered](t *testing.T, values ...T) {
	t.Helper()
	run(t, values, append(checks[T](), ordering[T]()))
}

func run[T comparable](t *testing.T, values []T, checks []check[T]) {
	t.Helper()
	if len(values) == 0 {
		t.Fatal("storagetest: no values to check")
	}
	for _, v := range values {
		// NaNs defeat every equality-based check below.
		equal, err := selfEqual(v)
		if err != nil {
			t.Fatalf("storagetest: value %#v cannot be compared: %v", v, err)
		}
		if !equal {
			t.Fatalf("storagetest: value %#v does not equal itself", v)
		}
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			// We encourage developers to read the source code directly, especially when
			// failures are not clear enough.
			t.Logf("Read the source for check %v at %v", c.name, c.location)
			for _, problem := range c.fn(values) {
				t.Error(problem)
			}
		})
	}
}

// checks returns the suite run for every type.
//
// invariant: the values are samples supplied by the caller, and every Storage
// built from them is only read back, overwritten and compared, never trusted.
func checks[T comparable]() []check[T] {
	return []check[T]{
		{
			name:     "construct-read",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				for _, v := range values {
					if got := unsafestorage.NewUnsafe(v).Inner(); got != v {
						problems = append(problems, fmt.Sprintf("NewUnsafe(%#v).Inner() = %#v", v, got))
					}
				}
				return problems
			},
		},
		{
			name:     "layout",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				// Shapes must match for every type, padded or not.
				want := layout.ShapeOf(reflect.TypeFor[T]())
				got := layout.ShapeOf(reflect.TypeFor[unsafestorage.Storage[T]]())
				if diff := gocmp.Diff(want, got); diff != "" {
					problems = append(problems, fmt.Sprintf("shape mismatch (-want +got):\n%v", diff))
				}
				// Padding bytes are unspecified, so only compare bytes without them.
				if layout.HasPadding(reflect.TypeFor[T]()) {
					return problems
				}
				for _, v := range values {
					s := unsafestorage.NewUnsafe(v)
					if !layout.Equal(&v, &s) {
						problems = append(problems, fmt.Sprintf("bytes of NewUnsafe(%#v) = %x, want %x", v, layout.Bytes(&s), layout.Bytes(&v)))
					}
				}
				return problems
			},
		},
		{
			name:     "reinterpret",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				backing := slices.Clone(values)
				cells := unsafestorage.UnsafeWrapSlice(backing)
				if len(cells) != len(backing) || cap(cells) != cap(backing) {
					problems = append(problems, fmt.Sprintf("len, cap of UnsafeWrapSlice = %v, %v; want %v, %v", len(cells), cap(cells), len(backing), cap(backing)))
					return problems
				}
				for i := range cells {
					if got := cells[i].Inner(); got != values[i] {
						problems = append(problems, fmt.Sprintf("UnsafeWrapSlice(values)[%d].Inner() = %#v, want %#v", i, got, values[i]))
					}
				}
				unwrapped := unsafestorage.UnsafeUnwrapSlice(cells)
				if len(unwrapped) > 0 && &unwrapped[0] != &backing[0] {
					problems = append(problems, "UnsafeUnwrapSlice(UnsafeWrapSlice(values)) does not share memory with values")
				}
				if !slices.Equal(unwrapped, values) {
					problems = append(problems, fmt.Sprintf("UnsafeUnwrapSlice(UnsafeWrapSlice(values)) = %#v, want %#v", unwrapped, values))
				}
				return problems
			},
		},
		{
			name:     "equality",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				for _, v := range values {
					for _, w := range values {
						got := unsafestorage.NewUnsafe(v) == unsafestorage.NewUnsafe(w)
						if want := v == w; got != want {
							problems = append(problems, fmt.Sprintf("NewUnsafe(%#v) == NewUnsafe(%#v) is %v, want %v", v, w, got, want))
						}
					}
				}
				return problems
			},
		},
		{
			name:     "hashing",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				seed := maphash.MakeSeed()
				cells := make(map[unsafestorage.Storage[T]]int)
				plain := make(map[T]int)
				for i, v := range values {
					if got, want := maphash.Comparable(seed, unsafestorage.NewUnsafe(v)), maphash.Comparable(seed, v); got != want {
						problems = append(problems, fmt.Sprintf("maphash.Comparable(NewUnsafe(%#v)) = %#x, want %#x", v, got, want))
					}
					cells[unsafestorage.NewUnsafe(v)] = i
					plain[v] = i
				}
				// A map keyed by Storage must deduplicate exactly like one keyed by values.
				if len(cells) != len(plain) {
					problems = append(problems, fmt.Sprintf("len(map[Storage]) = %v, want %v", len(cells), len(plain)))
				}
				for v, i := range plain {
					if got, ok := cells[unsafestorage.NewUnsafe(v)]; !ok || got != i {
						problems = append(problems, fmt.Sprintf("map[NewUnsafe(%#v)] = %v, %v; want %v, true", v, got, ok, i))
					}
				}
				return problems
			},
		},
		{
			name:     "zero",
			location: locateSource(),
			fn: func([]T) (problems []string) {
				var (
					s    unsafestorage.Storage[T]
					zero T
				)
				if got := s.Inner(); got != zero {
					problems = append(problems, fmt.Sprintf("Storage[%T]{}.Inner() = %#v, want %#v", zero, got, zero))
				}
				return problems
			},
		},
		{
			name:     "mutation",
			location: locateSource(),
			fn: func(values []T) (problems []string) {
				for _, v := range values {
					for _, w := range values {
						s := unsafestorage.NewUnsafe(v)
						*s.UnsafeMut() = w
						if got := s.Inner(); got != w {
							problems = append(problems, fmt.Sprintf("after *UnsafeMut() = %#v, Inner() = %#v", w, got))
						}
						if s != unsafestorage.NewUnsafe(w) {
							problems = append(problems, fmt.Sprintf("after *UnsafeMut() = %#v, Storage != NewUnsafe(%#v)", w, w))
						}

						s = unsafestorage.NewUnsafe(v)
						s.UnsafeUpdate(func(p *T) { *p = w })
						if got := s.Inner(); got != w {
							problems = append(problems, fmt.Sprintf("after UnsafeUpdate to %#v, Inner() = %#v", w, got))
						}
					}
				}
				return problems
			},
		},
	}
}

// ordering returns the check RunOrdered adds to the suite.
//
// invariant: Storage values built here are only compared and sorted.
func ordering[T cmp.Ordered]() check[T] {
	return check[T]{
		name:     "ordering",
		location: locateSource(),
		fn: func(values []T) (problems []string) {
			for _, v := range values {
				for _, w := range values {
					a, b := unsafestorage.NewUnsafe(v), unsafestorage.NewUnsafe(w)
					if got, want := unsafestorage.Compare(a, b), cmp.Compare(v, w); got != want {
						problems = append(problems, fmt.Sprintf("Compare(NewUnsafe(%#v), NewUnsafe(%#v)) = %v, want %v", v, w, got, want))
					}
					if got, want := unsafestorage.Less(a, b), cmp.Less(v, w); got != want {
						problems = append(problems, fmt.Sprintf("Less(NewUnsafe(%#v), NewUnsafe(%#v)) = %v, want %v", v, w, got, want))
					}
				}
			}

			// Sorting cells must yield the same sequence as sorting values. Stability
			// makes ties observable, so the results must match bit for bit: ties that
			// are distinct values (-0 and +0) must keep their order too.
			want := slices.Clone(values)
			slices.SortStableFunc(want, cmp.Compare[T])
			cells := make([]unsafestorage.Storage[T], len(values))
			for i, v := range values {
				cells[i] = unsafestorage.NewUnsafe(v)
			}
			slices.SortStableFunc(cells, unsafestorage.Compare[T])
			if got := slices.Collect(unsafestorage.Values(cells)); !slices.EqualFunc(want, got, identical[T]) {
				problems = append(problems, fmt.Sprintf("sorted cells = %#v, want %#v", got, want))
			}
			return problems
		},
	}
}

// identical reports whether a and b have the same bytes. Unlike == and
// cmp.Compare, it tells -0 from +0.
func identical[T any](a, b T) bool {
	return layout.Equal(&a, &b)
}

// selfEqual reports whether v == v. Comparing an interface holding a value of a
// non-comparable type (a slice, map or func) panics; that panic is returned as
// an error.
func selfEqual[T comparable](v T) (equal bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return v == v, nil
}

// Call this function to set the location of every check in the source file.
// The returned string guides developers to the failing check.
func locateSource() (path string) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		panic("runtime.Caller failed")
	}
	return fmt.Sprintf("%v:%v", file, line)
}
