package lib

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// PackageStore manages one named package: its manifest tree and the
// object store of the package root that holds it. A store handle is
// single-writer; concurrent mutation of the same package root is an
// explicit non-goal and the contract for overlapping writers is last
// writer wins.
type PackageStore struct {
	user     string
	pkg      string
	codec    Codec
	startDir string
	client   *http.Client

	// root and path are set once a manifest has been located (read) or
	// a write destination chosen. found records whether a manifest file
	// existed at open time.
	root    string
	path    string
	found   bool
	objects *ObjectStore
}

// Open creates a store handle for user/pkg, resolving the codec backend
// for format and searching the ancestors of startDir for an existing
// manifest. A missing manifest is not an error; read operations then
// see an empty package and write operations choose or create a root.
// An unknown format fails here, never lazily at first table access.
func Open(user, pkg string, format types.Format, startDir string) (*PackageStore, error) {
	if err := ValidateName(user); err != nil {
		return nil, fmt.Errorf("invalid user name: %w", err)
	}
	if err := ValidateName(pkg); err != nil {
		return nil, fmt.Errorf("invalid package name: %w", err)
	}

	codec, err := LookupCodec(format)
	if err != nil {
		return nil, err
	}

	s := &PackageStore{
		user:     user,
		pkg:      pkg,
		codec:    codec,
		startDir: startDir,
	}
	if err := s.findPathRead(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetClient overrides the HTTP client used for object transfers.
// Transfer policy (timeouts, retries) lives entirely in the client.
func (s *PackageStore) SetClient(client *http.Client) {
	s.client = client
	if s.objects != nil {
		s.objects = NewObjectStore(s.root, client)
	}
}

// findPathRead scans every resolved package root for an existing
// manifest; the nearest root containing one wins.
func (s *PackageStore) findPathRead() error {
	roots, err := FindPackageRoots(s.startDir)
	if err != nil {
		return err
	}
	for _, root := range roots {
		path := ManifestPath(root, s.user, s.pkg)
		if _, err := os.Stat(path); err == nil {
			s.root = root
			s.path = path
			s.found = true
			s.objects = NewObjectStore(root, s.client)
			return nil
		}
	}
	return nil
}

// findPathWrite chooses the innermost existing package root, or creates
// a fresh marker directory in the starting directory if none exist, and
// allocates the per-user and object directories.
func (s *PackageStore) findPathWrite() error {
	if s.path != "" {
		return EnsurePackageDirs(s.root, s.user)
	}

	roots, err := FindPackageRoots(s.startDir)
	if err != nil {
		return err
	}

	var root string
	if len(roots) > 0 {
		root = roots[0]
	} else {
		absStart, err := filepath.Abs(s.startDir)
		if err != nil {
			return err
		}
		root = filepath.Join(absStart, PackageDirName)
	}

	if err := EnsurePackageDirs(root, s.user); err != nil {
		return fmt.Errorf("failed to create package directories: %w", err)
	}
	s.root = root
	s.path = ManifestPath(root, s.user, s.pkg)
	s.objects = NewObjectStore(root, s.client)
	return nil
}

// Exists reports whether a manifest file for this package was located.
func (s *PackageStore) Exists() bool {
	return s.found
}

// Path returns the manifest file path, or "" if none has been located
// or chosen yet.
func (s *PackageStore) Path() string {
	return s.path
}

// Root returns the package root directory, or "" if none has been
// located or chosen yet.
func (s *PackageStore) Root() string {
	return s.root
}

// Objects returns the object store of the package root. It is nil until
// a manifest has been located or a write destination chosen.
func (s *PackageStore) Objects() *ObjectStore {
	return s.objects
}

// GetContents loads and decodes the manifest. A package with no
// manifest yet yields an empty group, not an error.
func (s *PackageStore) GetContents() (*types.Node, error) {
	if s.path == "" {
		return types.NewGroup(), nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewGroup(), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return DecodeContents(data)
}

// SaveContents encodes the tree and overwrites the manifest file in
// full. There is no incremental diffing; a write that never completes
// leaves the previous manifest intact.
func (s *PackageStore) SaveContents(root *types.Node) error {
	if err := s.findPathWrite(); err != nil {
		return err
	}
	data, err := EncodeContents(root)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	s.found = true
	return nil
}

// ClearContents removes the package's manifest file. Objects are left
// in place; there is no garbage collection of unreferenced objects.
func (s *PackageStore) ClearContents() error {
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	s.path = ""
	s.found = false
	return nil
}

// AddNode records a name-to-digest mapping in the manifest. The dotted
// name is split into segments, intermediate groups are created as
// needed, and the whole manifest is persisted. target selects the leaf
// variant; an unrecognized kind fails rather than defaulting.
func (s *PackageStore) AddNode(dottedName, digest, ext, sourcePath string, target types.TargetKind) error {
	var nodeType types.NodeType
	switch target {
	case types.TargetTable:
		nodeType = types.NodeTable
	case types.TargetFile:
		nodeType = types.NodeFile
	default:
		return &UnknownTargetError{Target: string(target)}
	}

	segments := strings.Split(dottedName, ".")
	for _, segment := range segments {
		if err := ValidateName(segment); err != nil {
			return err
		}
	}

	contents, err := s.GetContents()
	if err != nil {
		return err
	}

	ptr := contents
	for _, segment := range segments[:len(segments)-1] {
		child, ok := ptr.Children[segment]
		if !ok || child.Type != types.NodeGroup {
			child = types.NewGroup()
			ptr.Children[segment] = child
		}
		ptr = child
	}

	leaf := segments[len(segments)-1]
	ptr.Children[leaf] = types.NewLeaf(nodeType, digest, types.Metadata{
		Ext:    ext,
		Path:   sourcePath,
		Target: string(target),
	})

	return s.SaveContents(contents)
}

// Resolved is the outcome of a path lookup: exactly one field is set,
// depending on the variant of the node the path reached.
type Resolved struct {
	// Group is the subtree when the path names a namespace.
	Group *types.Node
	// Table is the materialized tabular data when the path names a
	// table, loaded through the store's codec backend.
	Table *types.Table
	// FilePath is the backing object path when the path names a file.
	FilePath string
}

// Resolve walks a slash-delimited path through the manifest tree. A
// missing segment fails with a PathNotFoundError identifying the
// matched-so-far prefix and the segment that broke the walk.
func (s *PackageStore) Resolve(path string) (*Resolved, error) {
	if !s.Exists() {
		return nil, ErrPackageNotFound
	}

	contents, err := s.GetContents()
	if err != nil {
		return nil, err
	}

	key := strings.TrimLeft(path, "/")
	var segments []string
	if key != "" {
		segments = strings.Split(key, "/")
	}

	ptr := contents
	var matched []string
	for _, segment := range segments {
		var child *types.Node
		if ptr.Type == types.NodeGroup {
			child = ptr.Children[segment]
		}
		if child == nil {
			return nil, &PathNotFoundError{
				User:    s.user,
				Package: s.pkg,
				Matched: matched,
				Missing: segment,
			}
		}
		matched = append(matched, segment)
		ptr = child
	}

	switch ptr.Type {
	case types.NodeGroup:
		return &Resolved{Group: ptr}, nil
	case types.NodeTable:
		table, err := s.loadTable(ptr)
		if err != nil {
			return nil, err
		}
		return &Resolved{Table: table}, nil
	case types.NodeFile:
		filePath, err := s.objects.RawFile(ptr.Hashes)
		if err != nil {
			return nil, err
		}
		return &Resolved{FilePath: filePath}, nil
	default:
		return nil, fmt.Errorf("unhandled node type %q", ptr.Type)
	}
}

// loadTable materializes a table node through the codec backend.
func (s *PackageStore) loadTable(node *types.Node) (*types.Table, error) {
	if len(node.Hashes) != 1 {
		return nil, fmt.Errorf("table objects must be contained in one object, got %d", len(node.Hashes))
	}
	return s.codec.LoadTable(s.objects.ObjectPath(node.Hashes[0]))
}

// Hash returns the package hash: the digest of the canonical
// serialization of the current contents. It is the package's global
// version identifier.
func (s *PackageStore) Hash() (string, error) {
	contents, err := s.GetContents()
	if err != nil {
		return "", err
	}
	return HashContents(contents)
}

// SaveFile stores a raw file as an object and records it under
// dottedName as a File node. The source file is left in place.
func (s *PackageStore) SaveFile(srcPath, dottedName, buildPath string) error {
	if err := s.findPathWrite(); err != nil {
		return err
	}

	digest, err := s.objects.PublishFile(srcPath)
	if err != nil {
		return err
	}
	return s.AddNode(normalizeName(dottedName), digest, "", buildPath, types.TargetFile)
}

// SaveTable serializes a table through the codec backend into the
// staging area, publishes the object, and records it under dottedName
// as a Table node. The object is durable before the manifest references
// its digest.
func (s *PackageStore) SaveTable(t *types.Table, dottedName, ext, buildPath string) error {
	if err := s.findPathWrite(); err != nil {
		return err
	}

	buildName := normalizeName(dottedName)
	staged := s.objects.Stage(buildName)
	if err := s.codec.SaveTable(t, staged); err != nil {
		return fmt.Errorf("failed to serialize table %s: %w", buildName, err)
	}
	digest, err := s.objects.Publish(staged)
	if err != nil {
		return err
	}
	return s.AddNode(buildName, digest, ext, buildPath, types.TargetTable)
}

// normalizeName accepts slash- or dot-delimited names and returns the
// dotted form used in manifests.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimLeft(name, "/"), "/", ".")
}
