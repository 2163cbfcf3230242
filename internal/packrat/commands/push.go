package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/packrat-data/packrat/internal/packrat/lib"
)

// Push writes a gzip-compressed copy of every object referenced by the
// package manifest into outDir, named <digest>.gz, ready for an
// uploader to ship to a registry. The canonical objects are read-only
// inputs; compression happens in a temporary spool per object.
func Push(dir, spec, outDir, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}
	if !store.Exists() {
		return fmt.Errorf("%s: %w", spec, lib.ErrPackageNotFound)
	}

	contents, err := store.GetContents()
	if err != nil {
		return err
	}
	digests := lib.CollectDigests(contents)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Staging %d objects from %s for upload...\n", len(digests), spec)
	for _, digest := range digests {
		if err := stageCompressed(store.Objects(), digest, outDir); err != nil {
			return err
		}
	}

	fmt.Printf("Staged %d objects in %s\n", len(digests), outDir)
	return nil
}

// stageCompressed spools one compressed object and copies it to its
// output file.
func stageCompressed(objects *lib.ObjectStore, digest, outDir string) error {
	upload, err := objects.CompressedUpload(digest)
	if err != nil {
		return err
	}
	defer upload.Close()

	outPath := filepath.Join(outDir, digest+".gz")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	_, copyErr := io.Copy(out, upload)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to stage object %s: %w", digest, copyErr)
	}
	if closeErr != nil {
		os.Remove(outPath)
		return closeErr
	}
	return nil
}
