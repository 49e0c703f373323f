package tree

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrDuplicateID is returned by FromRecords when two records share an id.
var ErrDuplicateID = errors.New("duplicate node id")

// Record is the flat, row-shaped form of a node used for storage.
type Record struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Position int    `json:"position" yaml:"position"` // index among siblings
}

// ToRecords flattens a forest in pre-order. Parent ids are taken from the
// structure, not from the cached ParentID fields.
func ToRecords(roots []*Node) []Record {
	var records []Record
	var visit func(n *Node, parentID string, pos int)
	visit = func(n *Node, parentID string, pos int) {
		records = append(records, Record{ID: n.ID, Label: n.Label, ParentID: parentID, Position: pos})
		for i, child := range n.Children {
			visit(child, n.ID, i)
		}
	}
	for i, root := range roots {
		visit(root, "", i)
	}
	return records
}

// FromRecords rebuilds a forest from flat records.
//
// A record whose parent does not exist becomes a root rather than being
// dropped. Siblings are ordered by Position, then by input order. Parent
// chains that loop are rejected with ErrCycle.
func FromRecords(records []Record) ([]*Node, error) {
	byID := make(map[string]*Node, len(records))
	index := make(map[string]int64, len(records))
	for i, r := range records {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		byID[r.ID] = &Node{ID: r.ID, Label: r.Label}
		index[r.ID] = int64(i)
	}

	if err := checkParentCycles(records, index); err != nil {
		return nil, err
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].Position < records[order[b]].Position
	})

	var roots []*Node
	for _, i := range order {
		r := records[i]
		node := byID[r.ID]
		if parent, ok := byID[r.ParentID]; ok && r.ParentID != "" {
			parent.AddChild(node)
			continue
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// checkParentCycles builds the child->parent graph and requires it to be
// topologically sortable.
func checkParentCycles(records []Record, index map[string]int64) error {
	g := simple.NewDirectedGraph()
	for _, r := range records {
		g.AddNode(simple.Node(index[r.ID]))
	}
	for _, r := range records {
		parent, ok := index[r.ParentID]
		if !ok || r.ParentID == "" {
			continue
		}
		if r.ParentID == r.ID {
			return fmt.Errorf("%w: %q is its own parent", ErrCycle, r.ID)
		}
		g.SetEdge(g.NewEdge(simple.Node(index[r.ID]), simple.Node(parent)))
	}
	if _, err := topo.Sort(g); err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) && len(cycles) > 0 && len(cycles[0]) > 0 {
			return fmt.Errorf("%w: involving %q", ErrCycle, records[cycles[0][0].ID()].ID)
		}
		return fmt.Errorf("%w: %v", ErrCycle, err)
	}
	return nil
}
