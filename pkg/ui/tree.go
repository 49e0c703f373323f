package ui

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/eqtree/pkg/logging"
	"github.com/vanderheijden86/eqtree/pkg/theme"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// TreeState is the persisted expand/collapse state of the tree view, saved
// to <state dir>/tree-state.json so it survives restarts.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "expanded": {
//	    "engineering": true
//	  }
//	}
//
// Branches start collapsed, so only expanded ids are stored. Ids that no
// longer exist are dropped on the next save. A missing or corrupt file means
// defaults.
type TreeState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"`
}

// TreeStateVersion is the current schema version for tree persistence.
const TreeStateVersion = 1

const treeStateFileName = "tree-state.json"

// TreeStatePath returns the state file inside dir.
func TreeStatePath(dir string) string {
	return filepath.Join(dir, treeStateFileName)
}

// treeRow is one visible line of the tree.
type treeRow struct {
	node   *tree.Node
	parent *tree.Node // nil for roots
	depth  int
	last   bool   // last among its siblings
	guides []bool // per ancestor level below the root: more siblings follow
}

// TreeView projects a forest as an expandable, keyboard-driven list.
//
// The view never mutates the forest. Expansion and selection live here, keyed
// by node id, so they survive SetRoots as long as the ids do.
type TreeView struct {
	roots    []*tree.Node
	rows     []treeRow
	expanded map[string]bool
	selected string // id of the last activated leaf

	cursor         int
	viewportOffset int
	width          int
	height         int

	styles   theme.Styles
	stateDir string // empty disables persistence
	log      *logging.Logger

	// OnSelect is called with the id of an activated leaf.
	OnSelect func(id string)
}

// NewTreeView creates an empty view.
func NewTreeView(styles theme.Styles) TreeView {
	return TreeView{
		styles:   styles,
		expanded: make(map[string]bool),
	}
}

// SetStyles swaps the active theme styles.
func (t *TreeView) SetStyles(styles theme.Styles) {
	t.styles = styles
}

// SetLogger sets the logger used for persistence warnings.
func (t *TreeView) SetLogger(log *logging.Logger) {
	t.log = log
}

// SetStateDir enables expand-state persistence in dir and loads any saved
// state.
func (t *TreeView) SetStateDir(dir string) {
	t.stateDir = dir
	t.loadState()
	t.rebuildRows()
}

// SetSize updates the available dimensions.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetRoots replaces the displayed forest. Call it after every mutation; the
// cursor stays on the same node when that node is still visible.
func (t *TreeView) SetRoots(roots []*tree.Node) {
	cursorID := t.CursorID()
	t.roots = roots

	if t.selected != "" && tree.Forest(roots).FindByID(t.selected) == nil {
		t.selected = ""
	}

	t.rebuildRows()
	if cursorID != "" {
		t.moveCursorTo(cursorID)
	}
	t.ensureCursorVisible()
}

// Roots returns the displayed forest.
func (t *TreeView) Roots() []*tree.Node {
	return t.roots
}

// Selected returns the id of the selected leaf, or "".
func (t *TreeView) Selected() string {
	return t.selected
}

// IsExpanded reports whether the branch id is expanded.
func (t *TreeView) IsExpanded(id string) bool {
	return t.expanded[id]
}

// Click applies the click contract to a visible row: a leaf becomes the
// selection and OnSelect fires; a branch toggles. Returns false when id is
// not visible.
func (t *TreeView) Click(id string) bool {
	idx := t.rowIndex(id)
	if idx < 0 {
		return false
	}
	t.cursor = idx
	node := t.rows[idx].node

	if node.IsLeaf() {
		t.selected = id
		if t.OnSelect != nil {
			t.OnSelect(id)
		}
		return true
	}

	t.setExpanded(id, !t.expanded[id])
	return true
}

// Activate clicks the row under the cursor.
func (t *TreeView) Activate() bool {
	node := t.CursorNode()
	if node == nil {
		return false
	}
	return t.Click(node.ID)
}

// CursorNode returns the node under the cursor, or nil.
func (t *TreeView) CursorNode() *tree.Node {
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return t.rows[t.cursor].node
	}
	return nil
}

// CursorID returns the id under the cursor, or "".
func (t *TreeView) CursorID() string {
	if n := t.CursorNode(); n != nil {
		return n.ID
	}
	return ""
}

// MoveDown moves the cursor down one row.
func (t *TreeView) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
	t.ensureCursorVisible()
}

// MoveUp moves the cursor up one row.
func (t *TreeView) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureCursorVisible()
}

// ToggleExpand expands or collapses the branch under the cursor.
func (t *TreeView) ToggleExpand() {
	node := t.CursorNode()
	if node != nil && !node.IsLeaf() {
		t.setExpanded(node.ID, !t.expanded[node.ID])
	}
}

// ExpandAll expands every branch.
func (t *TreeView) ExpandAll() {
	for _, n := range tree.Forest(t.roots).Flatten() {
		if !n.IsLeaf() {
			t.expanded[n.ID] = true
		}
	}
	t.rebuildRows()
	t.saveState()
}

// CollapseAll collapses every branch.
func (t *TreeView) CollapseAll() {
	t.expanded = make(map[string]bool)
	t.rebuildRows()
	t.saveState()
}

// JumpToTop moves the cursor to the first row.
func (t *TreeView) JumpToTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// JumpToBottom moves the cursor to the last row.
func (t *TreeView) JumpToBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
	t.ensureCursorVisible()
}

// JumpToParent moves the cursor to the parent row. No-op on roots.
func (t *TreeView) JumpToParent() {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return
	}
	parent := t.rows[t.cursor].parent
	if parent == nil {
		return
	}
	for i := t.cursor - 1; i >= 0; i-- {
		if t.rows[i].node == parent {
			t.cursor = i
			t.ensureCursorVisible()
			return
		}
	}
}

// ExpandOrMoveToChild handles → / l:
//   - collapsed branch: expand it
//   - expanded branch: move to its first child
//   - leaf: nothing
func (t *TreeView) ExpandOrMoveToChild() {
	node := t.CursorNode()
	if node == nil || node.IsLeaf() {
		return
	}
	if !t.expanded[node.ID] {
		t.setExpanded(node.ID, true)
		return
	}
	// the first child is the next row
	if t.cursor+1 < len(t.rows) {
		t.cursor++
		t.ensureCursorVisible()
	}
}

// CollapseOrJumpToParent handles ← / h:
//   - expanded branch: collapse it
//   - otherwise: jump to the parent
func (t *TreeView) CollapseOrJumpToParent() {
	node := t.CursorNode()
	if node == nil {
		return
	}
	if !node.IsLeaf() && t.expanded[node.ID] {
		t.setExpanded(node.ID, false)
		return
	}
	t.JumpToParent()
}

// PageDown moves the cursor down by half a viewport.
func (t *TreeView) PageDown() {
	t.cursor += t.pageSize()
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// PageUp moves the cursor up by half a viewport.
func (t *TreeView) PageUp() {
	t.cursor -= t.pageSize()
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

func (t *TreeView) pageSize() int {
	if size := t.height / 2; size >= 1 {
		return size
	}
	return 5
}

// SelectByID moves the cursor to id, expanding its ancestors so the row is
// visible. Returns false when id is not in the forest.
func (t *TreeView) SelectByID(id string) bool {
	path := tree.Forest(t.roots).FindPathTo(id)
	if len(path) == 0 {
		return false
	}
	changed := false
	for _, ancestor := range path[:len(path)-1] {
		if !t.expanded[ancestor.ID] {
			t.expanded[ancestor.ID] = true
			changed = true
		}
	}
	if changed {
		t.rebuildRows()
		t.saveState()
	}
	t.moveCursorTo(id)
	t.ensureCursorVisible()
	return true
}

// RowCount returns the number of visible rows.
func (t *TreeView) RowCount() int {
	return len(t.rows)
}

// VisibleIDs returns the ids of the visible rows in display order.
func (t *TreeView) VisibleIDs() []string {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.node.ID
	}
	return ids
}

func (t *TreeView) setExpanded(id string, expanded bool) {
	if expanded {
		t.expanded[id] = true
	} else {
		delete(t.expanded, id)
	}
	t.rebuildRows()
	t.saveState()
}

func (t *TreeView) rowIndex(id string) int {
	for i, r := range t.rows {
		if r.node.ID == id {
			return i
		}
	}
	return -1
}

func (t *TreeView) moveCursorTo(id string) {
	if idx := t.rowIndex(id); idx >= 0 {
		t.cursor = idx
	}
}

// rebuildRows re-derives the visible rows from the forest and expand state.
func (t *TreeView) rebuildRows() {
	t.rows = t.rows[:0]
	for i, root := range t.roots {
		t.appendVisible(root, nil, 0, i == len(t.roots)-1, nil)
	}
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *TreeView) appendVisible(n, parent *tree.Node, depth int, last bool, guides []bool) {
	t.rows = append(t.rows, treeRow{node: n, parent: parent, depth: depth, last: last, guides: guides})
	if n.IsLeaf() || !t.expanded[n.ID] {
		return
	}
	var childGuides []bool
	if depth > 0 {
		childGuides = make([]bool, len(guides), len(guides)+1)
		copy(childGuides, guides)
		childGuides = append(childGuides, !last)
	}
	for i, child := range n.Children {
		t.appendVisible(child, n, depth+1, i == len(n.Children)-1, childGuides)
	}
}

// ensureCursorVisible scrolls so the cursor row is inside the viewport.
func (t *TreeView) ensureCursorVisible() {
	height := t.viewHeight()
	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+height {
		t.viewportOffset = t.cursor - height + 1
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

func (t *TreeView) viewHeight() int {
	if t.height <= 0 {
		return 20
	}
	return t.height
}

// visibleRange returns the [start, end) slice of rows inside the viewport.
func (t *TreeView) visibleRange() (start, end int) {
	if len(t.rows) == 0 {
		return 0, 0
	}
	visible := t.viewHeight()

	start = t.viewportOffset
	end = start + visible
	if end > len(t.rows) {
		end = len(t.rows)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// View renders the visible rows.
func (t *TreeView) View() string {
	if len(t.rows) == 0 {
		return t.renderEmptyState()
	}

	start, end := t.visibleRange()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i])
		if i == t.cursor {
			line = t.styles.Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	return t.styles.Tree.Render(strings.Join(lines, "\n"))
}

func (t *TreeView) renderEmptyState() string {
	var sb strings.Builder
	sb.WriteString(t.styles.Title.Render("Tree"))
	sb.WriteString("\n\n")
	sb.WriteString(t.styles.Muted.Render("No nodes to display."))
	sb.WriteString("\n")
	sb.WriteString(t.styles.Muted.Render("Press a to add a root node."))
	return sb.String()
}

func (t *TreeView) renderRow(r treeRow) string {
	var sb strings.Builder

	prefix := buildTreePrefix(r)
	sb.WriteString(t.styles.Guide.Render(prefix))

	switch {
	case r.node.IsLeaf():
		sb.WriteString(t.styles.LeafSpacer.Render("•"))
	case t.expanded[r.node.ID]:
		sb.WriteString(t.styles.Chevron.Render("▾"))
	default:
		sb.WriteString(t.styles.Chevron.Render("▸"))
	}
	sb.WriteString(" ")

	label := truncateLabel(r.node.Label, t.labelWidth(prefix))
	if r.node.ID == t.selected {
		sb.WriteString(t.styles.ActiveRow.Render(label))
	} else {
		sb.WriteString(t.styles.Label.Render(label))
	}
	return t.styles.Row.Render(sb.String())
}

func (t *TreeView) labelWidth(prefix string) int {
	if t.width <= 0 {
		return 0
	}
	w := t.width - lipgloss.Width(prefix) - 2
	if w < 8 {
		w = 8
	}
	return w
}

// buildTreePrefix returns the guide characters in front of a row.
func buildTreePrefix(r treeRow) string {
	if r.depth == 0 {
		return ""
	}
	var sb strings.Builder
	for _, more := range r.guides {
		if more {
			sb.WriteString("│   ")
		} else {
			sb.WriteString("    ")
		}
	}
	if r.last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String()
}

// truncateLabel shortens label to maxWidth display cells. Zero means no
// limit.
func truncateLabel(label string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(label) <= maxWidth {
		return label
	}
	return runewidth.Truncate(label, maxWidth, "…")
}

// saveState writes the expanded ids that still exist. Errors are logged and
// otherwise ignored.
func (t *TreeView) saveState() {
	if t.stateDir == "" {
		return
	}

	forest := tree.Forest(t.roots)
	state := TreeState{Version: TreeStateVersion, Expanded: make(map[string]bool)}
	ids := make([]string, 0, len(t.expanded))
	for id := range t.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if forest.FindByID(id) != nil {
			state.Expanded[id] = true
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		t.log.Warnf(err, "marshal tree state")
		return
	}

	if err := os.MkdirAll(t.stateDir, 0o755); err != nil {
		t.log.With("dir", t.stateDir).Warnf(err, "create state directory")
		return
	}
	path := TreeStatePath(t.stateDir)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.log.With("path", path).Warnf(err, "write tree state")
	}
}

// loadState restores expanded ids from disk. Missing or invalid files leave
// the current state alone.
func (t *TreeView) loadState() {
	if t.stateDir == "" {
		return
	}
	path := TreeStatePath(t.stateDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			t.log.With("path", path).Warnf(err, "read tree state")
		}
		return
	}

	var state TreeState
	if err := json.Unmarshal(data, &state); err != nil {
		t.log.With("path", path).Warnf(err, "invalid tree state file, using defaults")
		return
	}
	for id, expanded := range state.Expanded {
		if expanded {
			t.expanded[id] = true
		}
	}
}

// Outline renders the whole forest, fully expanded and unstyled, one node per
// line with the same guides the view draws. Labels are cut to width cells.
func Outline(roots []*tree.Node, width int) string {
	var t TreeView
	t.roots = roots
	t.expanded = make(map[string]bool)
	for _, n := range tree.Forest(roots).Flatten() {
		if !n.IsLeaf() {
			t.expanded[n.ID] = true
		}
	}
	for i, root := range roots {
		t.appendVisible(root, nil, 0, i == len(roots)-1, nil)
	}

	var sb strings.Builder
	for _, r := range t.rows {
		prefix := buildTreePrefix(r)
		line := prefix + r.node.Label + "  (" + r.node.ID + ")"
		if width > 0 {
			line = truncateLabel(line, width)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
