package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	left        key.Binding
	right       key.Binding
	top         key.Binding
	bottom      key.Binding
	pageUp      key.Binding
	pageDown    key.Binding
	activate    key.Binding
	expandAll   key.Binding
	collapseAll key.Binding
	addChild    key.Binding
	addRoot     key.Binding
	remove      key.Binding
	mark        key.Binding
	move        key.Binding
	nextTheme   key.Binding
	prevTheme   key.Binding
	pickTheme   key.Binding
	copyID      key.Binding
	help        key.Binding
	cancel      key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "collapse / parent"),
		),
		right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "expand / child"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "page down"),
		),
		activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select / toggle"),
		),
		expandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
		collapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		addChild: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add child"),
		),
		addRoot: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add root"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark"),
		),
		move: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "move here"),
		),
		nextTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		prevTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "previous theme"),
		),
		pickTheme: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "pick theme"),
		),
		copyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.activate, k.addChild, k.remove, k.mark, k.move, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.top, k.bottom, k.pageUp, k.pageDown},
		{k.activate, k.expandAll, k.collapseAll},
		{k.addChild, k.addRoot, k.remove, k.mark, k.move},
		{k.nextTheme, k.prevTheme, k.pickTheme, k.copyID, k.help, k.quit},
	}
}
