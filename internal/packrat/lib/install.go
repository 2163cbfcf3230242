package lib

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// Install downloads a package locally: the manifest is persisted first,
// then every object referenced by a Table or File leaf is fetched from
// its URL and verified against its digest. The manifest-before-objects
// ordering is deliberate; a reader may observe a manifest referencing
// objects that are still being fetched, and a failed install leaves the
// manifest on disk referencing objects that were never fetched. Every
// referenced digest is fetched regardless of local cache state, and the
// first failure aborts the remainder of the install.
func (s *PackageStore) Install(contents *types.Node, urls map[string]string) error {
	if err := s.findPathWrite(); err != nil {
		return err
	}

	data, err := json.Marshal(contents)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	s.found = true

	return s.installNode(contents, urls)
}

// installNode fetches the objects for one subtree, groups first in
// sorted child order so the download sequence is deterministic.
func (s *PackageStore) installNode(node *types.Node, urls map[string]string) error {
	if node.Type == types.NodeGroup {
		names := make([]string, 0, len(node.Children))
		for name := range node.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := s.installNode(node.Children[name], urls); err != nil {
				return err
			}
		}
		return nil
	}

	for _, digest := range node.Hashes {
		url, ok := urls[digest]
		if !ok {
			return fmt.Errorf("no source URL for object %s", digest)
		}
		if err := s.objects.FetchInto(digest, url); err != nil {
			return err
		}
	}
	return nil
}
