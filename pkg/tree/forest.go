package tree

// Forest is an ordered list of root nodes owned by a single caller, the shape
// the tree view displays. Roots are root-shaped: their ParentID is empty.
type Forest []*Node

// FindByID searches each root in order.
func (f Forest) FindByID(target string) *Node {
	for _, root := range f {
		if found := root.FindByID(target); found != nil {
			return found
		}
	}
	return nil
}

// FindParentOf returns the parent of target, or nil when target is a root or
// absent.
func (f Forest) FindParentOf(target string) *Node {
	for _, root := range f {
		if root.ID == target {
			return nil
		}
		if found := root.FindParentOf(target); found != nil {
			return found
		}
	}
	return nil
}

// FindPathTo returns the path from the owning root down to target.
func (f Forest) FindPathTo(target string) []*Node {
	for _, root := range f {
		if path := root.FindPathTo(target); len(path) > 0 {
			return path
		}
	}
	return nil
}

// Flatten concatenates the pre-order flattening of every root.
func (f Forest) Flatten() []*Node {
	var result []*Node
	for _, root := range f {
		result = append(result, root.Flatten()...)
	}
	return result
}

// Len returns the total number of nodes.
func (f Forest) Len() int {
	count := 0
	for _, root := range f {
		count += root.Len()
	}
	return count
}

// LeafCount sums the leaf counts of every root.
func (f Forest) LeafCount() int {
	count := 0
	for _, root := range f {
		count += root.LeafCount()
	}
	return count
}

// Clone deep-copies every root.
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, len(f))
	for i, root := range f {
		out[i] = root.Clone()
	}
	return out
}

// Add attaches child under parentID, or as a new root when parentID is empty.
func (f *Forest) Add(parentID string, child *Node) bool {
	if parentID == "" {
		child.ParentID = ""
		*f = append(*f, child)
		return true
	}
	parent := f.FindByID(parentID)
	if parent == nil {
		return false
	}
	parent.AddChild(child)
	return true
}

// Remove detaches target wherever it is, roots included.
func (f *Forest) Remove(target string) *Node {
	for i, root := range *f {
		if root.ID == target {
			*f = append((*f)[:i:i], (*f)[i+1:]...)
			root.ParentID = ""
			return root
		}
	}
	for _, root := range *f {
		if removed := root.RemoveNode(target); removed != nil {
			return removed
		}
	}
	return nil
}

// Move relocates nodeID under newParentID anywhere in the forest, with the
// same guarantees as Node.Move. A root may be moved under another root.
func (f *Forest) Move(nodeID, newParentID string) error {
	if nodeID == newParentID {
		return ErrSelfMove
	}
	node := f.FindByID(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	if node.FindByID(newParentID) != nil {
		return ErrCycle
	}
	if f.FindByID(newParentID) == nil {
		return ErrParentNotFound
	}

	rootIdx := -1
	for i, root := range *f {
		if root.ID == nodeID {
			rootIdx = i
			break
		}
	}
	if rootIdx >= 0 {
		removed := (*f)[rootIdx]
		*f = append((*f)[:rootIdx:rootIdx], (*f)[rootIdx+1:]...)
		if f.Add(newParentID, removed) {
			return nil
		}
		*f = append((*f)[:rootIdx], append(Forest{removed}, (*f)[rootIdx:]...)...)
		return ErrParentNotFound
	}

	for _, root := range *f {
		parent, idx := root.locate(nodeID)
		if parent == nil {
			continue
		}
		removed := parent.detachAt(idx)
		if f.Add(newParentID, removed) {
			return nil
		}
		parent.insertAt(idx, removed)
		return ErrParentNotFound
	}
	return ErrNodeNotFound
}

// Normalize re-stamps parent ids under every root and clears the roots' own.
func (f Forest) Normalize() {
	for _, root := range f {
		root.ParentID = ""
		root.Normalize()
	}
}
