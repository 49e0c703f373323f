package tree

import (
	"errors"
	"reflect"
	"testing"
)

func sampleForest() Forest {
	return Forest{sampleTree(), NewBranch("s", "Second", NewLeaf("t", "T"))}
}

func TestForestLookup(t *testing.T) {
	f := sampleForest()
	if n := f.FindByID("t"); n == nil || n.ID != "t" {
		t.Errorf("FindByID(t) = %v", n)
	}
	if p := f.FindParentOf("t"); p == nil || p.ID != "s" {
		t.Errorf("FindParentOf(t) = %v, want s", p)
	}
	if p := f.FindParentOf("s"); p != nil {
		t.Errorf("FindParentOf(root) = %s, want nil", p.ID)
	}
	if got := ids(f.FindPathTo("c")); !reflect.DeepEqual(got, []string{"r", "b", "c"}) {
		t.Errorf("FindPathTo(c) = %v", got)
	}
	if f.Len() != 6 {
		t.Errorf("Len() = %d, want 6", f.Len())
	}
	if f.LeafCount() != 3 {
		t.Errorf("LeafCount() = %d, want 3", f.LeafCount())
	}
}

func TestForestAddAndRemove(t *testing.T) {
	f := sampleForest()
	if !f.Add("", NewLeaf("new", "New")) {
		t.Fatal("Add root failed")
	}
	if !f.Add("t", NewLeaf("u", "U")) {
		t.Fatal("Add under t failed")
	}
	if f.Add("missing", NewLeaf("v", "V")) {
		t.Error("Add under missing parent succeeded")
	}
	if got := ids(f); !reflect.DeepEqual(got, []string{"r", "s", "new"}) {
		t.Errorf("roots = %v", got)
	}

	if removed := f.Remove("s"); removed == nil || removed.Len() != 3 {
		t.Fatalf("Remove(s) = %v", removed)
	}
	if got := ids(f); !reflect.DeepEqual(got, []string{"r", "new"}) {
		t.Errorf("roots after Remove = %v", got)
	}
	if removed := f.Remove("c"); removed == nil {
		t.Error("Remove(c) = nil")
	}
	if f.Remove("missing") != nil {
		t.Error("Remove(missing) returned a node")
	}
}

func TestForestMove(t *testing.T) {
	f := sampleForest()
	if err := f.Move("s", "a"); err != nil {
		t.Fatalf("Move(s, a) = %v", err)
	}
	if got := ids(f); !reflect.DeepEqual(got, []string{"r"}) {
		t.Errorf("roots = %v, want [r]", got)
	}
	if p := f.FindParentOf("s"); p == nil || p.ID != "a" {
		t.Errorf("parent of s = %v, want a", p)
	}

	before := f.Clone()
	if err := f.Move("r", "t"); !errors.Is(err, ErrCycle) {
		t.Errorf("Move(r, t) = %v, want ErrCycle", err)
	}
	if err := f.Move("b", "b"); !errors.Is(err, ErrSelfMove) {
		t.Errorf("Move(b, b) = %v, want ErrSelfMove", err)
	}
	if err := f.Move("b", "nowhere"); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("Move(b, nowhere) = %v, want ErrParentNotFound", err)
	}
	if !reflect.DeepEqual(f, before) {
		t.Error("forest changed after refused moves")
	}

	if err := f.Move("c", "t"); err != nil {
		t.Fatalf("Move(c, t) = %v", err)
	}
	if c := f.FindByID("c"); c.ParentID != "t" {
		t.Errorf("c.ParentID = %q, want t", c.ParentID)
	}
}
