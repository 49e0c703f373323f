// Package tree implements the labeled hierarchy behind the tree view: lookup,
// pre-order traversal and structural mutation with a cycle-safe move.
//
// A Node exclusively owns its Children. ParentID is a cached back-reference
// used as a lookup key only; it is kept in sync by the mutation methods in this
// package, and direct edits to Children can desynchronize it.
package tree

import "errors"

// Move errors. MoveNode reports any of these as false.
var (
	ErrSelfMove       = errors.New("node cannot be moved under itself")
	ErrNodeNotFound   = errors.New("node not found")
	ErrParentNotFound = errors.New("new parent not found")
	ErrCycle          = errors.New("new parent is a descendant of the node")
)

// Node is one entry in a hierarchy.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	ParentID string  `json:"parent_id,omitempty" yaml:"parent_id,omitempty"` // "" for root-shaped nodes
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewLeaf creates a node with no children and no parent.
func NewLeaf(id, label string) *Node {
	return &Node{ID: id, Label: label}
}

// NewBranch creates a node owning the given children, in order.
// Each child gets ParentID = id; the branch itself stays root-shaped.
func NewBranch(id, label string, children ...*Node) *Node {
	n := &Node{ID: id, Label: label}
	n.Children = make([]*Node, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		child.ParentID = id
		n.Children = append(n.Children, child)
	}
	return n
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{ID: n.ID, Label: n.Label, ParentID: n.ParentID}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// FindByID returns the first node in pre-order (self first) whose id matches,
// or nil.
func (n *Node) FindByID(target string) *Node {
	if n.ID == target {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindByID(target); found != nil {
			return found
		}
	}
	return nil
}

// FindParentOf returns the direct parent of target within this subtree.
// Returns nil if target is n itself or is not present.
func (n *Node) FindParentOf(target string) *Node {
	for _, child := range n.Children {
		if child.ID == target {
			return n
		}
		if found := child.FindParentOf(target); found != nil {
			return found
		}
	}
	return nil
}

// FindPathTo returns the nodes from n down to target, inclusive.
// The result is empty when target is not found.
func (n *Node) FindPathTo(target string) []*Node {
	if n.ID == target {
		return []*Node{n}
	}
	for _, child := range n.Children {
		if path := child.FindPathTo(target); len(path) > 0 {
			return append([]*Node{n}, path...)
		}
	}
	return nil
}

// DepthOf returns the number of edges between n and target (n is depth 0).
func (n *Node) DepthOf(target string) (int, bool) {
	if n.ID == target {
		return 0, true
	}
	for _, child := range n.Children {
		if d, ok := child.DepthOf(target); ok {
			return d + 1, true
		}
	}
	return 0, false
}

// Flatten returns every node of the subtree in pre-order.
func (n *Node) Flatten() []*Node {
	var result []*Node
	n.Walk(func(node *Node, _ int) bool {
		result = append(result, node)
		return true
	})
	return result
}

// Walk visits the subtree in pre-order. Returning false from fn skips the
// children of the node just visited.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Len returns the number of nodes in the subtree, n included.
func (n *Node) Len() int {
	count := 1
	for _, child := range n.Children {
		count += child.Len()
	}
	return count
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// LeafCount counts the leaves of the subtree (1 when n is itself a leaf).
func (n *Node) LeafCount() int {
	if n.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.LeafCount()
	}
	return count
}

// AddChild appends child to n and stamps its ParentID.
// Ids are not checked for uniqueness.
func (n *Node) AddChild(child *Node) {
	child.ParentID = n.ID
	n.Children = append(n.Children, child)
}

// AddChildTo appends child under the first node (pre-order) with id parentID.
// The parent is located before child is touched, so on false child is left
// exactly as it was passed in.
func (n *Node) AddChildTo(parentID string, child *Node) bool {
	parent := n.FindByID(parentID)
	if parent == nil {
		return false
	}
	parent.AddChild(child)
	return true
}

// RemoveNode detaches the subtree rooted at targetID and returns it.
// Each level checks its own children before descending, so n itself can never
// be removed. The detached node is root-shaped (ParentID cleared).
func (n *Node) RemoveNode(targetID string) *Node {
	parent, idx := n.locate(targetID)
	if parent == nil {
		return nil
	}
	return parent.detachAt(idx)
}

// locate finds the parent holding targetID as a direct child, using the same
// search order as RemoveNode.
func (n *Node) locate(targetID string) (*Node, int) {
	for i, child := range n.Children {
		if child.ID == targetID {
			return n, i
		}
	}
	for _, child := range n.Children {
		if parent, idx := child.locate(targetID); parent != nil {
			return parent, idx
		}
	}
	return nil, -1
}

func (n *Node) detachAt(idx int) *Node {
	removed := n.Children[idx]
	n.Children = append(n.Children[:idx:idx], n.Children[idx+1:]...)
	removed.ParentID = ""
	return removed
}

func (n *Node) insertAt(idx int, child *Node) {
	if idx < 0 || idx > len(n.Children) {
		idx = len(n.Children)
	}
	child.ParentID = n.ID
	n.Children = append(n.Children, nil)
	copy(n.Children[idx+1:], n.Children[idx:])
	n.Children[idx] = child
}

// EmptyNode removes and returns all children, leaving n a leaf.
func (n *Node) EmptyNode() []*Node {
	removed := n.Children
	n.Children = nil
	if removed == nil {
		return []*Node{}
	}
	return removed
}

// MoveNode relocates the subtree rooted at nodeID under newParentID.
// It reports false, leaving the tree unchanged, for a self-move, a move that
// would create a cycle, or when either id is missing.
func (n *Node) MoveNode(nodeID, newParentID string) bool {
	return n.Move(nodeID, newParentID) == nil
}

// Move is MoveNode with the reason for a refusal.
//
// Both ends are validated before anything is detached. Should the attach still
// fail after detaching, the subtree goes back to its original position.
func (n *Node) Move(nodeID, newParentID string) error {
	if nodeID == newParentID {
		return ErrSelfMove
	}
	node := n.FindByID(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	if node.FindByID(newParentID) != nil {
		return ErrCycle
	}
	if n.FindByID(newParentID) == nil {
		return ErrParentNotFound
	}

	oldParent, idx := n.locate(nodeID)
	if oldParent == nil {
		// nodeID is n itself; every other node is inside its subtree.
		return ErrCycle
	}
	removed := oldParent.detachAt(idx)
	if !n.AddChildTo(newParentID, removed) {
		oldParent.insertAt(idx, removed)
		return ErrParentNotFound
	}
	return nil
}

// Normalize re-stamps ParentID throughout the subtree from its structure.
// n keeps its own ParentID.
func (n *Node) Normalize() {
	for _, child := range n.Children {
		child.ParentID = n.ID
		child.Normalize()
	}
}
