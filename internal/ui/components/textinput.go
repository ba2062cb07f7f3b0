package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/livecheck"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label, a live feedback mark and
// a graded state.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Feedback livecheck.Feedback

	graded  bool
	correct bool
}

// NewTextInput creates a new blurred text input.
func NewTextInput(label, placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}
	return TextInput{Model: ti, Label: label}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Graded inputs are read-only.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.graded {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and its mark.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(18).Render(t.Label)
	view := label + t.Model.View()

	switch {
	case t.graded && t.correct:
		view += " " + theme.Correct.Render("✓")
	case t.graded:
		view += " " + theme.Incorrect.Render("✗")
	default:
		view += feedbackMark(t.Feedback)
	}
	return view
}

func feedbackMark(fb livecheck.Feedback) string {
	switch fb.State {
	case livecheck.StateOK:
		return " " + theme.Correct.Render("✓")
	case livecheck.StateProgress:
		return " " + theme.InProgress.Render("…")
	case livecheck.StateAlmost:
		return " " + theme.Almost.Render("~ "+fb.Message)
	case livecheck.StateMismatch:
		return " " + theme.Incorrect.Render("! "+fb.Message)
	}
	return ""
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Grade locks the input with its graded result.
func (t *TextInput) Grade(correct bool) {
	t.graded = true
	t.correct = correct
	t.Feedback = livecheck.Feedback{}
	t.Model.Blur()
}

// Graded reports whether the input was locked by Grade.
func (t TextInput) Graded() bool {
	return t.graded
}
