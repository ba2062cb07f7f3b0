package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNewMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Locked", Disabled: true},
		{Label: "Verbs"},
		{Label: "Words"},
	})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenuNavigation(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Verbs", Action: func() tea.Cmd { pressed = "verbs"; return nil }},
		{Label: "Hidden", Disabled: true},
		{Label: "Words", Action: func() tea.Cmd { pressed = "words"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("down: Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("down at end: Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != "words" {
		t.Errorf("pressed = %q, want %q", pressed, "words")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("up: Selected = %d, want 0", m.Selected)
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Verbs", Detail: "3 words"}, {Label: "Words"}})
	view := m.View()
	for _, want := range []string{"▸ Verbs", "3 words", "Words"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		if got := Fraction(tt.done, tt.total); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	view := NewProgressBar("Today", 0.5, true, 40).View()
	if !strings.Contains(view, "Today") || !strings.Contains(view, "50%") {
		t.Errorf("view = %q, want label and percentage", view)
	}
}
