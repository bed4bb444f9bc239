package safety

import unsafestorage "github.com/andrewgazelka/unsafe-storage"

func documented() unsafestorage.Storage[string] {
	// SAFETY: the literal is already normalized.
	return unsafestorage.NewUnsafe("nfc")
}

func defaultMarker() unsafestorage.Storage[string] {
	// invariant: the default marker is not accepted here.
	return unsafestorage.NewUnsafe("nfc") // want `NewUnsafe is trust-marked; document the invariant it relies on with a "// SAFETY" comment`
}
