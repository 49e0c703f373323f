package theme

// State is the active theme of one rendering root. It is an ordinary value
// passed to whatever renders; there is no global lookup. Like the tree model it
// is meant for a single owner and does no locking.
type State struct {
	current   Theme
	listeners []func(Theme)
}

// NewState starts from the given theme.
func NewState(initial Theme) *State {
	return &State{current: initial}
}

// Current returns the active theme.
func (s *State) Current() Theme {
	return s.current
}

// Set switches the active theme and notifies subscribers. Setting the theme
// that is already active is a no-op.
func (s *State) Set(t Theme) {
	if t == s.current {
		return
	}
	s.current = t
	for _, fn := range s.listeners {
		fn(t)
	}
}

// SetCustom activates user-provided CSS.
func (s *State) SetCustom(css string) {
	s.Set(NewCustom(css))
}

// Next switches to the following built-in theme, wrapping around. From a
// custom theme it goes to the first built-in.
func (s *State) Next() Theme {
	k := s.current.Kind + 1
	if !s.current.Kind.IsBuiltin() || !k.IsBuiltin() {
		k = Unghosty
	}
	s.Set(Builtin(k))
	return s.current
}

// Prev switches to the preceding built-in theme, wrapping around.
func (s *State) Prev() Theme {
	k := s.current.Kind - 1
	if !s.current.Kind.IsBuiltin() || !k.IsBuiltin() {
		k = Custom - 1
	}
	s.Set(Builtin(k))
	return s.current
}

// Stylesheet returns the CSS to inject for the active theme together with a
// key that changes whenever the stylesheet does: the variant name for
// built-ins and "custom" for injected CSS.
func (s *State) Stylesheet() (key, css string) {
	if custom, ok := s.current.CustomCSS(); ok {
		return "custom", custom
	}
	css, _ = s.current.CSSContent()
	return s.current.Name(), css
}

// Subscribe registers fn to be called after every theme change.
func (s *State) Subscribe(fn func(Theme)) {
	s.listeners = append(s.listeners, fn)
}
