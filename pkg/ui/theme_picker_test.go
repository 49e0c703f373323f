package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/eqtree/pkg/theme"
)

func TestNewThemePickerModel(t *testing.T) {
	picker := NewThemePickerModel(theme.Builtin(theme.Nord), newTestStyles())

	if len(picker.variants) != 21 {
		t.Errorf("expected 21 themes, got %d", len(picker.variants))
	}
	if picker.Selected().Kind != theme.Nord {
		t.Errorf("expected Nord highlighted, got %s", picker.Selected())
	}
}

func TestNewThemePickerModelCustom(t *testing.T) {
	picker := NewThemePickerModel(theme.NewCustom(":root{}"), newTestStyles())
	if picker.selectedIndex != 0 {
		t.Errorf("custom theme should start at index 0, got %d", picker.selectedIndex)
	}
}

func TestThemePickerNavigation(t *testing.T) {
	picker := NewThemePickerModel(theme.Default(), newTestStyles())

	picker.MoveUp()
	if picker.selectedIndex != 0 {
		t.Errorf("MoveUp at top changed index to %d", picker.selectedIndex)
	}
	picker.MoveDown()
	if picker.Selected().Kind != theme.Burgundy {
		t.Errorf("after MoveDown expected Burgundy, got %s", picker.Selected())
	}
	for i := 0; i < 30; i++ {
		picker.MoveDown()
	}
	if picker.Selected().Kind != theme.TokyoNight {
		t.Errorf("MoveDown should stop at TokyoNight, got %s", picker.Selected())
	}
}

func TestThemePickerWindow(t *testing.T) {
	picker := NewThemePickerModel(theme.Builtin(theme.TokyoNight), newTestStyles())
	picker.SetSize(80, 20)

	start, end := picker.window()
	if end-start != 10 {
		t.Errorf("window size = %d, want 10", end-start)
	}
	if end != 21 {
		t.Errorf("window should end at the last theme, got %d", end)
	}

	picker.SetSize(80, 60)
	if start, end := picker.window(); start != 0 || end != 21 {
		t.Errorf("tall window = [%d,%d), want all", start, end)
	}
}

func TestThemePickerView(t *testing.T) {
	picker := NewThemePickerModel(theme.Builtin(theme.Ocean), newTestStyles())
	picker.SetSize(80, 40)
	out := picker.View()

	for _, want := range []string{"Theme", "> Ocean", "✓", "enter: apply"} {
		if !strings.Contains(out, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
