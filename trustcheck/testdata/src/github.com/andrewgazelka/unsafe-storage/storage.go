package unsafestorage

type Storage[T any] struct {
	inner T
}

func NewUnsafe[T any](inner T) Storage[T] {
	return Storage[T]{inner: inner}
}

func (s *Storage[T]) UnsafeMut() *T {
	return &s.inner
}

func (s *Storage[T]) UnsafeUpdate(fn func(inner *T)) {
	fn(&s.inner)
}

func (s Storage[T]) Inner() T {
	return s.inner
}

func UnsafeWrapSlice[T any](s []T) []Storage[T] {
	return nil
}

func Values[T any](s []Storage[T]) func(func(T) bool) {
	return nil
}
