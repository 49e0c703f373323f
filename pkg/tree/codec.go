package tree

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the current schema version for serialized forests.
const DocumentVersion = 1

// Document is the on-disk form of a forest.
//
//	{
//	  "version": 1,
//	  "nodes": [
//	    {"id": "r", "label": "Root", "children": [{"id": "a", "label": "A"}]}
//	  ]
//	}
//
// Parent ids are optional in files; decoding restores them from structure.
type Document struct {
	Version int     `json:"version" yaml:"version"`
	Nodes   []*Node `json:"nodes" yaml:"nodes"`
}

// MarshalJSON encodes a forest as an indented Document.
func MarshalJSON(roots []*Node) ([]byte, error) {
	return json.MarshalIndent(Document{Version: DocumentVersion, Nodes: roots}, "", "  ")
}

// UnmarshalJSON decodes a Document (or a bare node array) into a forest.
func UnmarshalJSON(data []byte) ([]*Node, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var bare []*Node
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			return nil, fmt.Errorf("decode tree json: %w", err)
		}
		doc.Nodes = bare
	}
	return finish(doc)
}

// MarshalYAML encodes a forest as a Document.
func MarshalYAML(roots []*Node) ([]byte, error) {
	return yaml.Marshal(Document{Version: DocumentVersion, Nodes: roots})
}

// UnmarshalYAML decodes a Document (or a bare node list) into a forest.
func UnmarshalYAML(data []byte) ([]*Node, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var bare []*Node
		if bareErr := yaml.Unmarshal(data, &bare); bareErr != nil {
			return nil, fmt.Errorf("decode tree yaml: %w", err)
		}
		doc.Nodes = bare
	}
	return finish(doc)
}

func finish(doc Document) ([]*Node, error) {
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("unsupported tree document version %d", doc.Version)
	}
	seen := make(map[string]bool)
	roots := make([]*Node, 0, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n == nil {
			return nil, fmt.Errorf("node %d is empty", i)
		}
		if err := checkDecoded(n, seen); err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	Forest(roots).Normalize()
	return roots, nil
}

// checkDecoded rejects null children and repeated ids anywhere below n.
func checkDecoded(n *Node, seen map[string]bool) error {
	if seen[n.ID] {
		return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID)
	}
	seen[n.ID] = true
	for i, child := range n.Children {
		if child == nil {
			return fmt.Errorf("node %q: child %d is empty", n.ID, i)
		}
		if err := checkDecoded(child, seen); err != nil {
			return err
		}
	}
	return nil
}
