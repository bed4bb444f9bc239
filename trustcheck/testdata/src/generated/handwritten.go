package generated

import unsafestorage "github.com/andrewgazelka/unsafe-storage"

func handwritten() unsafestorage.Storage[uint8] {
	return unsafestorage.NewUnsafe[uint8](1) // want `NewUnsafe is trust-marked`
}
