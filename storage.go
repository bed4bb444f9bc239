package unsafestorage

// Storage holds a value of type T that must satisfy invariants which are known
// only to the code that creates it. Storage does not know those invariants and
// never checks them; it only marks, through the names of its methods, the
// places where they must be upheld.
//
// Storage has the same size, alignment and byte representation as T.
// Code relies on this to reinterpret between T and Storage[T], so the struct
// must never gain a second field.
//
// The zero value holds the zero value of T. Whether that satisfies the
// invariant is up to the code declaring it.
type Storage[T any] struct {
	inner T
}

// NewUnsafe returns a Storage holding inner, as is.
//
// The caller claims that inner already satisfies the invariants of the
// surrounding code. The signature alone is no justification: call NewUnsafe only
// where the adjacent code or comments establish why inner is valid.
func NewUnsafe[T any](inner T) Storage[T] {
	return Storage[T]{inner: inner}
}

// UnsafeMut returns a pointer to the value inside s.
//
// Writing through the pointer is safe only if, for the value T' left behind,
// NewUnsafe(T') would have been safe to call. The pointer is meant for immediate
// use: do not retain it past the caller's exclusive use of s, and do not use it
// while another goroutine can reach s.
func (s *Storage[T]) UnsafeMut() *T {
	return &s.inner
}

// UnsafeUpdate calls fn with a pointer to the value inside s. Access ends when fn
// returns, and fn must not let the pointer escape.
//
// The obligations are those of UnsafeMut: the value fn leaves behind must be as
// valid as any value passed to NewUnsafe.
func (s *Storage[T]) UnsafeUpdate(fn func(inner *T)) {
	fn(&s.inner)
}

// Inner returns a copy of the value inside s.
//
// Reading cannot break an invariant, so Inner is not trust-marked. Note that for
// a T holding references (pointers, slices, maps, channels, functions or
// interfaces) the copy shares memory with the value inside s; writing through
// such a copy crosses the same trust boundary as UnsafeMut.
func (s Storage[T]) Inner() T {
	return s.inner
}
