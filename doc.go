// Package unsafestorage provides Storage, a wrapper marking that its value must
// uphold invariants the wrapper itself does not check.
//
// Creating a Storage and modifying the value inside it are therefore "unsafe":
// not in the memory-safety sense of package unsafe, but in the sense that
// behaviour of code relying on the invariant is undefined (or at least
// undocumented) once it is broken. Every such operation carries the word Unsafe
// in its name so that each call site reads as a trust boundary:
//
//	// invariant: i < len(table), checked by the caller of lookup.
//	idx := unsafestorage.NewUnsafe(i)
//
// Storage exists for code generators. Generated code commonly needs a private
// storage cell per expansion, and the generator cannot introduce a package (or
// a dedicated type) for every expansion without making it awkward to expand the
// same template twice in one package. Instead, generated code wraps its state in
// a Storage and confines the Unsafe calls to itself.
//
// A Storage[T] has exactly the memory layout of T. It is comparable whenever T
// is, usable as a map key whenever T is, and its zero value holds the zero value
// of T. Ordering is provided by Compare, Less and CompareFunc because Go has no
// operator overloading. Since the layouts are identical, slices of T and slices
// of Storage[T] can be reinterpreted in place (see UnsafeWrapSlice).
//
// Storage does not synchronise access. Callers sharing a Storage between
// goroutines must serialise access themselves, exactly as for a bare T.
//
// The trustcheck analyzer (see package
// github.com/andrewgazelka/unsafe-storage/trustcheck) reports Unsafe calls that
// lack an invariant comment outside generated code.
package unsafestorage
