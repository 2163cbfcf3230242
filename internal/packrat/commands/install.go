package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// InstallSpec is the payload a registry hands to install: the package
// manifest plus a digest-to-URL map for every referenced object.
type InstallSpec struct {
	Contents *types.Node       `json:"contents"`
	Objects  map[string]string `json:"objects"`
}

// Install reads an install spec file and populates the local package
// root with the manifest and every referenced object.
func Install(dir, spec, specFile, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(specFile)
	if err != nil {
		return fmt.Errorf("failed to read install spec: %w", err)
	}
	var installSpec InstallSpec
	if err := json.Unmarshal(data, &installSpec); err != nil {
		return fmt.Errorf("failed to parse install spec: %w", err)
	}
	if installSpec.Contents == nil {
		return fmt.Errorf("install spec has no contents")
	}

	fmt.Printf("Installing %s...\n", spec)
	if err := store.Install(installSpec.Contents, installSpec.Objects); err != nil {
		return fmt.Errorf("install of %s failed: %w", spec, err)
	}

	fmt.Printf("Installed %s to %s\n", spec, store.Path())
	return nil
}
