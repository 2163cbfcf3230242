// Package types defines the shared data model for packrat: the tagged
// manifest tree, table payloads, and the enumerated target kinds and
// codec formats.
package types

import (
	"encoding/json"
	"fmt"
)

// NodeType tags a manifest tree node. The tag is part of the serialized
// form; Table and File nodes share a shape and cannot be told apart
// without it.
type NodeType string

const (
	NodeGroup NodeType = "group"
	NodeTable NodeType = "table"
	NodeFile  NodeType = "file"
)

// TargetKind records what a built artifact should resolve to: a table
// materialized through a codec backend, or a raw file path.
type TargetKind string

const (
	TargetTable TargetKind = "table"
	TargetFile  TargetKind = "file"
)

// Format selects a codec backend for table (de)serialization. It is an
// explicit configuration value threaded through store construction,
// never ambient process state.
type Format string

const (
	FormatCSV   Format = "CSV"
	FormatJSONL Format = "JSONL"
	FormatYAML  Format = "YAML"

	// DefaultFormat is used when the caller does not care which backend
	// stores its tables.
	DefaultFormat = FormatCSV
)

// Metadata carries the build provenance of a Table or File node.
type Metadata struct {
	// Ext is the original source file extension, without the dot.
	Ext string `json:"ext"`
	// Path is the source path the artifact was built from.
	Path string `json:"path"`
	// Target is the TargetKind the node was built as.
	Target string `json:"target"`
}

// Node is one vertex of a manifest tree. Exactly one variant is
// populated, selected by Type: Group nodes carry Children, Table and
// File nodes carry Hashes plus Metadata.
type Node struct {
	Type     NodeType
	Children map[string]*Node
	Hashes   []string
	Metadata Metadata
}

// NewGroup returns an empty namespace node.
func NewGroup() *Node {
	return &Node{Type: NodeGroup, Children: make(map[string]*Node)}
}

// NewLeaf returns a Table or File node holding a single content digest.
func NewLeaf(nodeType NodeType, digest string, meta Metadata) *Node {
	return &Node{Type: nodeType, Hashes: []string{digest}, Metadata: meta}
}

// groupJSON and leafJSON pin the serialized field sets per variant.
// encoding/json writes map keys in sorted order, which makes the
// compact encoding canonical and therefore safe to hash.
type groupJSON struct {
	Type     NodeType         `json:"type"`
	Children map[string]*Node `json:"children"`
}

type leafJSON struct {
	Type     NodeType `json:"type"`
	Hashes   []string `json:"hashes"`
	Metadata Metadata `json:"metadata"`
}

// MarshalJSON encodes the node with an explicit variant tag.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case NodeGroup:
		return json.Marshal(groupJSON{Type: n.Type, Children: n.Children})
	case NodeTable, NodeFile:
		return json.Marshal(leafJSON{Type: n.Type, Hashes: n.Hashes, Metadata: n.Metadata})
	default:
		return nil, fmt.Errorf("cannot encode node with unknown type %q", n.Type)
	}
}

// UnmarshalJSON decodes a tagged node, rejecting unknown tags rather
// than inferring a variant from shape.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     NodeType         `json:"type"`
		Children map[string]*Node `json:"children"`
		Hashes   []string         `json:"hashes"`
		Metadata Metadata         `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case NodeGroup:
		children := raw.Children
		if children == nil {
			children = make(map[string]*Node)
		}
		*n = Node{Type: NodeGroup, Children: children}
	case NodeTable, NodeFile:
		*n = Node{Type: raw.Type, Hashes: raw.Hashes, Metadata: raw.Metadata}
	default:
		return fmt.Errorf("cannot decode node with unknown type %q", raw.Type)
	}
	return nil
}

// Table is the in-memory tabular representation handed back by codec
// backends. The store never inspects it beyond passing it through.
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}
