package tree

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestJSONRoundTripRestoresParents(t *testing.T) {
	data, err := MarshalJSON([]*Node{sampleTree()})
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.Contains(string(data), `"version": 1`) {
		t.Errorf("missing version in %s", data)
	}

	roots, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(roots) != 1 || !reflect.DeepEqual(roots[0], sampleTree()) {
		t.Errorf("round trip mismatch: %+v", roots)
	}
}

func TestUnmarshalJSONBareArray(t *testing.T) {
	roots, err := UnmarshalJSON([]byte(`[{"id":"r","label":"R","children":[{"id":"a","label":"A"}]}]`))
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got := roots[0].Children[0].ParentID; got != "r" {
		t.Errorf("ParentID = %q, want r", got)
	}
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	if _, err := UnmarshalJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid json")
	}
	if _, err := UnmarshalJSON([]byte(`{"version": 9, "nodes": []}`)); err == nil {
		t.Error("expected error for future version")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := MarshalYAML([]*Node{sampleTree(), NewLeaf("z", "Z")})
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	roots, err := UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	if got := ids(Forest(roots).Flatten()); !reflect.DeepEqual(got, []string{"r", "a", "b", "c", "z"}) {
		t.Errorf("flattened = %v", got)
	}
	if c := Forest(roots).FindByID("c"); c.ParentID != "b" {
		t.Errorf("c.ParentID = %q, want b", c.ParentID)
	}
}

func TestUnmarshalYAMLHandWritten(t *testing.T) {
	src := `
nodes:
  - id: docs
    label: Docs
    children:
      - id: intro
        label: Intro
      - id: guide
        label: Guide
        parent_id: wrong
`
	roots, err := UnmarshalYAML([]byte(src))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	if got := roots[0].FindByID("guide").ParentID; got != "docs" {
		t.Errorf("ParentID = %q, want docs (restored from structure)", got)
	}
}

func TestDecodeRejectsEmptyChildren(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) ([]*Node, error)
		src    string
	}{
		{"json nested null", UnmarshalJSON, `{"version":1,"nodes":[{"id":"r","label":"R","children":[null]}]}`},
		{"json deep null", UnmarshalJSON, `[{"id":"r","label":"R","children":[{"id":"a","label":"A","children":[{"id":"b","label":"B"},null]}]}]`},
		{"json root null", UnmarshalJSON, `{"version":1,"nodes":[null]}`},
		{"yaml nested null", UnmarshalYAML, "nodes:\n  - id: r\n    label: R\n    children:\n      - ~\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := tt.decode([]byte(tt.src))
			if err == nil {
				t.Fatalf("expected error, got %d roots", len(roots))
			}
			if !strings.Contains(err.Error(), "is empty") {
				t.Errorf("error = %v, want an empty-node error", err)
			}
		})
	}
}

func TestDecodeRejectsDuplicateIDs(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) ([]*Node, error)
		src    string
	}{
		{"json nested under itself", UnmarshalJSON, `[{"id":"r","label":"R","children":[{"id":"r","label":"Again"}]}]`},
		{"json across roots", UnmarshalJSON, `[{"id":"x","label":"X"},{"id":"y","label":"Y","children":[{"id":"x","label":"X2"}]}]`},
		{"yaml two roots", UnmarshalYAML, "nodes:\n  - id: x\n    label: X\n  - id: x\n    label: Other\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.decode([]byte(tt.src)); !errors.Is(err, ErrDuplicateID) {
				t.Errorf("error = %v, want ErrDuplicateID", err)
			}
		})
	}
}
