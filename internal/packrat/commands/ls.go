package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packrat-data/packrat/internal/packrat/lib"
)

// InstalledPackage identifies one installed package and the root it
// lives in.
type InstalledPackage struct {
	User    string
	Package string
	Root    string
}

// ListPackages collects every user/package pair found in the package
// roots resolved from startDir, nearest root first.
func ListPackages(startDir string) ([]InstalledPackage, error) {
	roots, err := lib.FindPackageRoots(startDir)
	if err != nil {
		return nil, err
	}

	var packages []InstalledPackage
	for _, root := range roots {
		users, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read package root %s: %w", root, err)
		}
		for _, user := range users {
			if !user.IsDir() || user.Name() == lib.ObjectsDirName {
				continue
			}
			manifests, err := os.ReadDir(filepath.Join(root, user.Name()))
			if err != nil {
				continue
			}
			for _, manifest := range manifests {
				if manifest.IsDir() || !strings.HasSuffix(manifest.Name(), lib.PackageFileExt) {
					continue
				}
				packages = append(packages, InstalledPackage{
					User:    user.Name(),
					Package: strings.TrimSuffix(manifest.Name(), lib.PackageFileExt),
					Root:    root,
				})
			}
		}
	}
	return packages, nil
}

// Ls is the main function for the 'ls' command. It prints every
// installed package visible from the target directory.
func Ls(targetDirectory string) error {
	absTargetPath, err := filepath.Abs(targetDirectory)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", targetDirectory, err)
	}

	packages, err := ListPackages(absTargetPath)
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}

	if len(packages) == 0 {
		fmt.Printf("No packages found from \"%s\".\n", absTargetPath)
		return nil
	}

	fmt.Printf("%-30s %s\n", "PACKAGE", "ROOT")
	fmt.Printf("%-30s %s\n", "=======", "====")
	for _, p := range packages {
		fmt.Printf("%-30s %s\n", p.User+"/"+p.Package, p.Root)
	}
	return nil
}
