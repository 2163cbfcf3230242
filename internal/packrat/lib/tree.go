package lib

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// DecodeContents parses a serialized manifest back into its Node tree.
// The root of a manifest is always a Group.
func DecodeContents(data []byte) (*types.Node, error) {
	var root types.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if root.Type != types.NodeGroup {
		return nil, fmt.Errorf("manifest root must be a group, got %q", root.Type)
	}
	return &root, nil
}

// EncodeContents serializes a manifest tree for storage. The stored form
// is pretty-printed; it re-hashes identically to the canonical form
// because both come from the same tagged encoding with sorted keys.
func EncodeContents(root *types.Node) ([]byte, error) {
	return json.MarshalIndent(root, "", "  ")
}

// HashContents computes the package hash: the digest of the canonical
// compact serialization of the whole tree. encoding/json writes map
// keys in sorted order at every level, so two trees with identical
// structure and content hash identically regardless of the order their
// children were inserted.
func HashContents(root *types.Node) (string, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return "", err
	}
	return GetHash(data), nil
}

// CollectDigests walks a manifest tree and returns every distinct
// object digest referenced by its Table and File leaves, sorted.
func CollectDigests(root *types.Node) []string {
	seen := make(map[string]bool)
	var walk func(node *types.Node)
	walk = func(node *types.Node) {
		if node.Type == types.NodeGroup {
			for _, child := range node.Children {
				walk(child)
			}
			return
		}
		for _, digest := range node.Hashes {
			seen[digest] = true
		}
	}
	walk(root)

	digests := make([]string, 0, len(seen))
	for digest := range seen {
		digests = append(digests, digest)
	}
	sort.Strings(digests)
	return digests
}
