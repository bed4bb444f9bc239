// Package cmpstorage provides go-cmp options for values that contain an
// [unsafestorage.Storage].
//
// A Storage keeps its value in an unexported field, and [cmp.Equal] and
// [cmp.Diff] panic on unexported fields unless told otherwise:
//
//	if diff := cmp.Diff(want, got, cmpstorage.Transparent()); diff != "" {
//		t.Errorf("mismatch (-want +got):\n%v", diff)
//	}
package cmpstorage

import (
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	unsafestorage "github.com/andrewgazelka/unsafe-storage"
)

// storagePath and storageName identify instantiations of Storage. The name of an
// instantiated generic type includes its type arguments (e.g. "Storage[int]"),
// so only the prefix is stable.
var (
	storagePath = reflect.TypeFor[unsafestorage.Storage[struct{}]]().PkgPath()
	storageName = "Storage["
)

// IsStorage reports whether t is an instantiation of unsafestorage.Storage.
func IsStorage(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == storagePath &&
		strings.HasPrefix(t.Name(), storageName)
}

// Transparent returns an option that makes go-cmp compare every Storage by the
// value it holds, whatever its type argument. Values are compared as go-cmp
// would compare them unwrapped, including any other options in effect.
//
// Only the fields of Storage are exposed: other unexported fields still need
// their own options (e.g. cmp.AllowUnexported).
func Transparent() cmp.Option {
	return cmp.Exporter(IsStorage)
}
