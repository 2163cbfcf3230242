// Package commands contains the command-line operations for packrat.
// Each operation resolves its package store, does its work, and prints
// progress; all reusable logic lives in the lib package.
package commands

import (
	"fmt"
	"strings"

	"github.com/packrat-data/packrat/internal/packrat/lib"
	"github.com/packrat-data/packrat/internal/packrat/types"
)

// SplitPackageSpec parses a "user/package" argument into its parts.
// Name validation happens in the store; this only checks the shape.
func SplitPackageSpec(spec string) (user, pkg string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("package must be specified as user/package, got %q", spec)
	}
	return parts[0], parts[1], nil
}

// openStore is the shared preamble: parse the spec, pick the codec
// format, and open the package store rooted at dir.
func openStore(dir, spec, format string) (*lib.PackageStore, error) {
	user, pkg, err := SplitPackageSpec(spec)
	if err != nil {
		return nil, err
	}

	codecFormat := types.DefaultFormat
	if format != "" {
		codecFormat = types.Format(format)
	}

	store, err := lib.Open(user, pkg, codecFormat, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open package %s: %w", spec, err)
	}
	return store, nil
}
