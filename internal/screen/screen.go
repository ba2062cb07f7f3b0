// Package screen defines the contract between the app shell and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body. The shell draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that list their own keys in
// the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that reload state when they become
// active again after the screen above them closes.
type Refresher interface {
	Refresh() tea.Cmd
}

// InputCapturer is implemented by screens that are currently taking text
// input, so the shell does not treat typed letters as global shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}
