package lib

import (
	"os"
	"path/filepath"
)

// --- Constants ---

// PackageDirName is the reserved marker directory that identifies a
// package root.
const PackageDirName = "packrat_packages"

// PackageFileExt is the extension of per-package manifest files.
const PackageFileExt = ".json"

// ObjectsDirName is the subdirectory holding canonical immutable objects.
const ObjectsDirName = "objs"

// TmpObjectsDirName is the staging subdirectory (under objs) for
// in-progress objects whose digest is not yet known.
const TmpObjectsDirName = "tmp"

// IgnoreFilename is the file containing user-defined ignore patterns
// consulted when adding a directory of files to a package.
const IgnoreFilename = ".packratignore"

// --- Directory resolver ---

// FindPackageRoots walks up the directory tree from start and collects
// every packrat_packages directory found in an ancestor, nearest first.
// The walk is the same as Node's node_modules algorithm, except it does
// not stop at the first match. The result is regenerated fresh on each
// call; an empty slice means no root exists yet.
func FindPackageRoots(start string) ([]string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	var roots []string
	for {
		parent, name := filepath.Dir(path), filepath.Base(path)
		if name != PackageDirName {
			marker := filepath.Join(path, PackageDirName)
			if info, err := os.Stat(marker); err == nil && info.IsDir() {
				roots = append(roots, marker)
			}
		}
		if parent == path {
			// The only reliable way to detect the filesystem root.
			break
		}
		path = parent
	}
	return roots, nil
}

// --- Path helpers ---

// ObjectsDir returns the canonical object directory for a package root.
func ObjectsDir(root string) string {
	return filepath.Join(root, ObjectsDirName)
}

// TmpObjectsDir returns the staging directory for a package root.
func TmpObjectsDir(root string) string {
	return filepath.Join(root, ObjectsDirName, TmpObjectsDirName)
}

// ManifestPath returns the path of a package's manifest file under a
// package root.
func ManifestPath(root, user, pkg string) string {
	return filepath.Join(root, user, pkg+PackageFileExt)
}

// EnsurePackageDirs creates the per-user manifest directory, the object
// directory, and the staging directory under a package root. It is
// idempotent.
func EnsurePackageDirs(root, user string) error {
	if err := os.MkdirAll(filepath.Join(root, user), 0755); err != nil {
		return err
	}
	return os.MkdirAll(TmpObjectsDir(root), 0755)
}
