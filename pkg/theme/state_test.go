package theme

import "testing"

func TestStateSetAndStylesheet(t *testing.T) {
	s := NewState(Default())
	key, css := s.Stylesheet()
	if key != "Unghosty" || css == "" {
		t.Errorf("Stylesheet() = (%q, %d bytes)", key, len(css))
	}

	s.Set(Builtin(Ocean))
	if s.Current().Kind != Ocean {
		t.Errorf("Current() = %s, want Ocean", s.Current())
	}

	s.SetCustom(":root{}")
	key, css = s.Stylesheet()
	if key != "custom" || css != ":root{}" {
		t.Errorf("custom Stylesheet() = (%q, %q)", key, css)
	}
}

func TestStateSubscribe(t *testing.T) {
	s := NewState(Default())
	var seen []Kind
	s.Subscribe(func(th Theme) { seen = append(seen, th.Kind) })

	s.Set(Builtin(Nord))
	s.Set(Builtin(Nord)) // unchanged, no notification
	s.SetCustom("x")

	if len(seen) != 2 || seen[0] != Nord || seen[1] != Custom {
		t.Errorf("notifications = %v, want [Nord Custom]", seen)
	}
}

func TestStateCycle(t *testing.T) {
	tests := []struct {
		name  string
		start Theme
		next  Kind
		prev  Kind
	}{
		{"first", Builtin(Unghosty), Burgundy, TokyoNight},
		{"last", Builtin(TokyoNight), Unghosty, SolarizedDark},
		{"custom", NewCustom("x"), Unghosty, TokyoNight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewState(tt.start).Next().Kind; got != tt.next {
				t.Errorf("Next() = %s, want %s", got, tt.next)
			}
			if got := NewState(tt.start).Prev().Kind; got != tt.prev {
				t.Errorf("Prev() = %s, want %s", got, tt.prev)
			}
		})
	}
}
