// Package ui is the terminal interface of eqt: a tree view projection plus
// the application model that edits the forest behind it.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/eqtree/pkg/loader"
	"github.com/vanderheijden86/eqtree/pkg/logging"
	"github.com/vanderheijden86/eqtree/pkg/theme"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

type mode int

const (
	modeTree mode = iota
	modeHelp
	modeAdd
	modeTheme
)

// ReloadMsg carries a forest re-read from disk.
type ReloadMsg struct {
	Roots []*tree.Node
	Err   error
}

// Options configures an App.
type Options struct {
	Title    string
	Roots    []*tree.Node
	Theme    theme.Theme
	StateDir string // where tree-state.json lives; empty disables it
	Logger   *logging.Logger
	Renderer *lipgloss.Renderer

	// Watcher, when set, feeds ReloadMsgs from the tree file.
	Watcher *loader.Watcher

	// OnChange is called with the forest after every edit. A returned
	// error is shown in the status line.
	OnChange func(tree.Forest) error
}

// App is the top-level Bubble Tea model. It owns the forest; the tree view
// only projects it.
type App struct {
	title    string
	forest   tree.Forest
	view     TreeView
	themes   *theme.State
	styles   theme.Styles
	renderer *lipgloss.Renderer

	keys     keyMap
	help     help.Model
	helpView viewport.Model

	mode   mode
	form   *huh.Form
	draft  *nodeDraft
	picker ThemePickerModel

	marked        string
	status        string
	statusIsError bool

	width  int
	height int

	log      *logging.Logger
	watcher  *loader.Watcher
	onChange func(tree.Forest) error

	copyToClipboard func(string) error
}

// NewApp creates the application model.
func NewApp(opts Options) *App {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	title := opts.Title
	if title == "" {
		title = "eqt"
	}

	a := &App{
		title:           title,
		forest:          tree.Forest(opts.Roots),
		themes:          theme.NewState(opts.Theme),
		renderer:        r,
		keys:            newKeyMap(),
		help:            help.New(),
		log:             opts.Logger,
		watcher:         opts.Watcher,
		onChange:        opts.OnChange,
		copyToClipboard: clipboard.WriteAll,
	}
	a.styles = theme.StylesFor(r, a.themes.Current())

	a.view = NewTreeView(a.styles)
	a.view.SetLogger(opts.Logger)
	a.view.OnSelect = func(id string) {
		if n := a.forest.FindByID(id); n != nil {
			a.setStatus(fmt.Sprintf("Selected %s (%s)", n.Label, id))
		}
	}
	a.view.SetRoots(a.forest)
	if opts.StateDir != "" {
		a.view.SetStateDir(opts.StateDir)
	}

	a.themes.Subscribe(a.applyTheme)
	a.applyTheme(a.themes.Current())
	return a
}

// Forest returns the current forest.
func (a *App) Forest() tree.Forest {
	return a.forest
}

// Themes returns the theme state.
func (a *App) Themes() *theme.State {
	return a.themes
}

// TreeView returns the tree view.
func (a *App) TreeView() *TreeView {
	return &a.view
}

func (a *App) applyTheme(t theme.Theme) {
	a.styles = theme.StylesFor(a.renderer, t)
	a.view.SetStyles(a.styles)
	a.help.Styles.ShortKey = a.styles.Chevron
	a.help.Styles.ShortDesc = a.styles.Muted
	a.help.Styles.ShortSeparator = a.styles.Guide
	a.help.Styles.FullKey = a.styles.Chevron
	a.help.Styles.FullDesc = a.styles.Muted
}

// Init starts listening for reloads.
func (a *App) Init() tea.Cmd {
	return a.waitForReload()
}

func (a *App) waitForReload() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	events := a.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ReloadMsg{Roots: ev.Roots, Err: ev.Err}
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case ReloadMsg:
		a.handleReload(msg)
		return a, a.waitForReload()
	}

	switch a.mode {
	case modeAdd:
		return a, a.updateForm(msg)
	case modeHelp:
		return a, a.updateHelp(msg)
	case modeTheme:
		a.updatePicker(msg)
		return a, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width
	a.view.SetSize(width, a.treeHeight())
	a.helpView.Width = width
	a.helpView.Height = height - 1
	a.picker.SetSize(width, height)
	if a.mode == modeHelp {
		a.helpView.SetContent(renderHelp(a.keys, width))
	}
}

// treeHeight leaves room for the title and the two footer lines.
func (a *App) treeHeight() int {
	h := a.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) handleReload(msg ReloadMsg) {
	if msg.Err != nil {
		a.setError(fmt.Sprintf("Reload failed: %v", msg.Err))
		return
	}
	a.forest = tree.Forest(msg.Roots)
	a.view.SetRoots(a.forest)
	if a.marked != "" && a.forest.FindByID(a.marked) == nil {
		a.marked = ""
	}
	a.log.With("nodes", a.forest.Len()).Debug("tree reloaded")
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := a.keys
	switch {
	case key.Matches(msg, k.quit):
		return tea.Quit
	case key.Matches(msg, k.up):
		a.view.MoveUp()
	case key.Matches(msg, k.down):
		a.view.MoveDown()
	case key.Matches(msg, k.left):
		a.view.CollapseOrJumpToParent()
	case key.Matches(msg, k.right):
		a.view.ExpandOrMoveToChild()
	case key.Matches(msg, k.top):
		a.view.JumpToTop()
	case key.Matches(msg, k.bottom):
		a.view.JumpToBottom()
	case key.Matches(msg, k.pageUp):
		a.view.PageUp()
	case key.Matches(msg, k.pageDown):
		a.view.PageDown()
	case key.Matches(msg, k.activate):
		a.view.Activate()
	case key.Matches(msg, k.expandAll):
		a.view.ExpandAll()
	case key.Matches(msg, k.collapseAll):
		a.view.CollapseAll()
	case key.Matches(msg, k.addChild):
		parent := a.view.CursorID()
		return a.openForm(parent)
	case key.Matches(msg, k.addRoot):
		return a.openForm("")
	case key.Matches(msg, k.remove):
		a.removeAtCursor()
	case key.Matches(msg, k.mark):
		a.markAtCursor()
	case key.Matches(msg, k.move):
		a.moveMarkedToCursor()
	case key.Matches(msg, k.nextTheme):
		t := a.themes.Next()
		a.setStatus("Theme: " + t.Name())
	case key.Matches(msg, k.prevTheme):
		t := a.themes.Prev()
		a.setStatus("Theme: " + t.Name())
	case key.Matches(msg, k.pickTheme):
		a.picker = NewThemePickerModel(a.themes.Current(), a.styles)
		a.picker.SetSize(a.width, a.height)
		a.mode = modeTheme
	case key.Matches(msg, k.copyID):
		a.copyID()
	case key.Matches(msg, k.help):
		a.helpView = viewport.New(a.width, a.height-1)
		a.helpView.SetContent(renderHelp(a.keys, a.width))
		a.mode = modeHelp
	case key.Matches(msg, k.cancel):
		if a.marked != "" {
			a.marked = ""
			a.setStatus("Move cancelled")
		}
	}
	return nil
}

func (a *App) openForm(parentID string) tea.Cmd {
	a.draft = &nodeDraft{parentID: parentID}
	a.form = newNodeForm(a.draft, a.forest, a.modalWidth())
	a.mode = modeAdd
	return a.form.Init()
}

func (a *App) modalWidth() int {
	w := a.width - 10
	if w > 60 {
		w = 60
	}
	if w < 0 {
		return 0
	}
	return w
}

func (a *App) updateForm(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.keys.cancel) {
		a.closeForm()
		a.setStatus("Add cancelled")
		return nil
	}

	model, cmd := a.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		d := a.draft
		a.closeForm()
		a.AddNode(d.parentID, strings.TrimSpace(d.id), strings.TrimSpace(d.label))
		return nil
	case huh.StateAborted:
		a.closeForm()
		a.setStatus("Add cancelled")
		return nil
	}
	return cmd
}

func (a *App) closeForm() {
	a.form = nil
	a.draft = nil
	a.mode = modeTree
}

func (a *App) updateHelp(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(km, a.keys.cancel, a.keys.help, a.keys.quit) {
			a.mode = modeTree
			return nil
		}
	}
	var cmd tea.Cmd
	a.helpView, cmd = a.helpView.Update(msg)
	return cmd
}

func (a *App) updatePicker(msg tea.Msg) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch {
	case key.Matches(km, a.keys.up):
		a.picker.MoveUp()
	case key.Matches(km, a.keys.down):
		a.picker.MoveDown()
	case km.String() == "enter":
		t := a.picker.Selected()
		a.themes.Set(t)
		a.mode = modeTree
		a.setStatus("Theme: " + t.Name())
	case key.Matches(km, a.keys.cancel, a.keys.quit):
		a.mode = modeTree
	}
}

// AddNode inserts a new leaf under parentID ("" for a new root), reveals it
// and reports the change.
func (a *App) AddNode(parentID, id, label string) bool {
	if err := validateNodeID(a.forest, id); err != nil {
		a.setError(fmt.Sprintf("Cannot add %q: %v", id, err))
		return false
	}
	if !a.forest.Add(parentID, tree.NewLeaf(id, label)) {
		a.setError(fmt.Sprintf("Cannot add: parent %q not found", parentID))
		return false
	}
	a.view.SetRoots(a.forest)
	a.view.SelectByID(id)
	a.setStatus(fmt.Sprintf("Added %s", label))
	a.changed()
	return true
}

func (a *App) removeAtCursor() {
	id := a.view.CursorID()
	if id == "" {
		return
	}
	removed := a.forest.Remove(id)
	if removed == nil {
		a.setError(fmt.Sprintf("Cannot remove %s", id))
		return
	}
	if a.marked != "" && removed.FindByID(a.marked) != nil {
		a.marked = ""
	}
	a.view.SetRoots(a.forest)
	a.setStatus(fmt.Sprintf("Removed %s (%d nodes)", removed.Label, removed.Len()))
	a.changed()
}

func (a *App) markAtCursor() {
	id := a.view.CursorID()
	if id == "" {
		return
	}
	a.marked = id
	a.setStatus(fmt.Sprintf("Marked %s: move the cursor to the new parent and press p", id))
}

func (a *App) moveMarkedToCursor() {
	if a.marked == "" {
		a.setError("Nothing marked: press m on a node first")
		return
	}
	target := a.view.CursorID()
	if target == "" {
		return
	}

	nodeID := a.marked
	if err := a.forest.Move(nodeID, target); err != nil {
		a.setError(moveErrorText(nodeID, target, err))
		return
	}
	a.marked = ""
	a.view.SetRoots(a.forest)
	a.view.SelectByID(nodeID)
	a.setStatus(fmt.Sprintf("Moved %s under %s", nodeID, target))
	a.changed()
}

func moveErrorText(nodeID, target string, err error) string {
	switch {
	case errors.Is(err, tree.ErrSelfMove):
		return "Cannot move a node under itself"
	case errors.Is(err, tree.ErrCycle):
		return fmt.Sprintf("Cannot move %s into its own subtree", nodeID)
	case errors.Is(err, tree.ErrNodeNotFound):
		return fmt.Sprintf("Node %s no longer exists", nodeID)
	case errors.Is(err, tree.ErrParentNotFound):
		return fmt.Sprintf("Parent %s not found", target)
	default:
		return fmt.Sprintf("Move failed: %v", err)
	}
}

func (a *App) copyID() {
	id := a.view.Selected()
	if id == "" {
		id = a.view.CursorID()
	}
	if id == "" {
		return
	}
	if err := a.copyToClipboard(id); err != nil {
		a.setError(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	a.setStatus(fmt.Sprintf("Copied %s to clipboard", id))
}

func (a *App) changed() {
	if a.onChange == nil {
		return
	}
	if err := a.onChange(a.forest); err != nil {
		a.log.Error(err, "persist tree")
		a.setError(fmt.Sprintf("Save failed: %v", err))
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusIsError = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusIsError = true
}

// View renders the current screen.
func (a *App) View() string {
	switch a.mode {
	case modeHelp:
		return a.helpView.View() + "\n" + a.styles.Status.Render("esc: close | ↑/↓: scroll")
	case modeTheme:
		return a.picker.View()
	case modeAdd:
		box := a.styles.Modal.Render(a.form.View())
		if a.width == 0 || a.height == 0 {
			return box
		}
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
	}

	header := a.styles.Title.Render(a.title) + a.styles.Muted.Render(fmt.Sprintf(
		"  %d nodes · %d leaves · %s", a.forest.Len(), a.forest.LeafCount(), a.themes.Current().Name()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.view.View(),
		a.renderStatus(),
		a.help.View(a.keys),
	)
}

func (a *App) renderStatus() string {
	var parts []string
	if a.marked != "" {
		parts = append(parts, a.styles.Chevron.Render("[moving "+a.marked+"]"))
	}
	if a.status != "" {
		if a.statusIsError {
			parts = append(parts, a.styles.Error.Render(a.status))
		} else {
			parts = append(parts, a.styles.Status.Render(a.status))
		}
	}
	return strings.Join(parts, " ")
}
