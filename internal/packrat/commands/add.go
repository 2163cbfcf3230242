package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/packrat-data/packrat/internal/packrat/lib"
)

// Add stores a single raw file under the given node name.
func Add(dir, spec, name, filePath, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}

	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", filePath, err)
	}
	if _, err := os.Stat(absFile); os.IsNotExist(err) {
		return fmt.Errorf("source file does not exist: %s", absFile)
	}

	if err := store.SaveFile(absFile, name, filePath); err != nil {
		return fmt.Errorf("failed to add %s: %w", filePath, err)
	}

	fmt.Printf("Added %s as %s to %s\n", filePath, name, spec)
	return nil
}

// AddDir walks a directory and stores every regular file as a File
// node, using the file's relative path (separators become dots, the
// extension is dropped) as its node name. Files matched by
// .packratignore or the default ignore patterns are skipped.
func AddDir(dir, spec, sourceDir, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}

	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", sourceDir, err)
	}
	if _, err := os.Stat(absSource); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", absSource)
	}

	added := 0
	err = filepath.WalkDir(absSource, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absSource {
			return nil
		}
		if lib.IsPathIgnored(absSource, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absSource, path)
		if err != nil {
			return err
		}
		name := nodeNameFromPath(rel)
		if err := store.SaveFile(path, name, rel); err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		added++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %d files from %s to %s\n", added, sourceDir, spec)
	return nil
}

// nodeNameFromPath turns a relative file path into a dotted node name:
// the extension is dropped and path separators become dots.
func nodeNameFromPath(rel string) string {
	slashed := filepath.ToSlash(rel)
	if ext := filepath.Ext(slashed); ext != "" {
		slashed = slashed[:len(slashed)-len(ext)]
	}
	return strings.ReplaceAll(slashed, "/", ".")
}
