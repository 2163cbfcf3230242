package commands

import (
	"fmt"

	"github.com/packrat-data/packrat/internal/packrat/lib"
)

// Hash prints the package hash, the digest that identifies the current
// version of the package's contents.
func Hash(dir, spec, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}
	if !store.Exists() {
		return fmt.Errorf("%s: %w", spec, lib.ErrPackageNotFound)
	}

	hash, err := store.Hash()
	if err != nil {
		return fmt.Errorf("failed to hash package %s: %w", spec, err)
	}

	fmt.Println(hash)
	return nil
}
