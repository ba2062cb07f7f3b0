package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/ui/theme"
)

// Choice asks a question with a short list of options.
type Choice struct {
	Question string
	Options  []string
	// Danger marks the option rendered as destructive, or -1.
	Danger    int
	Selected  int
	Submitted bool
}

// NewChoice creates a choice with the first option selected.
func NewChoice(question string, options []string, danger int) Choice {
	return Choice{
		Question: question,
		Options:  options,
		Danger:   danger,
	}
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j", "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
	}

	return c, nil
}

// Chosen returns the submitted option index.
func (c Choice) Chosen() (int, bool) {
	return c.Selected, c.Submitted
}

// View renders the question and its options.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question) + "\n\n"

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Selected && i == c.Danger:
			style = theme.Incorrect
		case i == c.Selected:
			style = theme.Selected
		}
		s += style.Render(line) + "\n"
	}

	return s
}
