package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Press runs the button action when it is active.
func (b Button) Press() tea.Cmd {
	if !b.Active || b.OnPress == nil {
		return nil
	}
	return b.OnPress()
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal group of buttons with one focused.
type ButtonRow struct {
	Buttons []Button
	Focus   int
}

// NewButtonRow focuses the first button.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setFocus(0)
	return r
}

func (r *ButtonRow) setFocus(i int) {
	if i < 0 || i >= len(r.Buttons) {
		return
	}
	r.Focus = i
	for j := range r.Buttons {
		r.Buttons[j].Active = j == i
	}
}

// Update moves focus with the arrow keys and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setFocus(r.Focus - 1)
	case "right", "l", "tab":
		r.setFocus(r.Focus + 1)
	case "enter":
		return r, r.Buttons[r.Focus].Press()
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	var s string
	for i, b := range r.Buttons {
		if i > 0 {
			s += "  "
		}
		s += b.View()
	}
	return s
}
