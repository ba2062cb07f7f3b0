// Package summary shows the score of a finished test.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

// maxMissedShown caps the review list.
const maxMissedShown = 8

// SummaryScreen displays the result of a finished test.
type SummaryScreen struct {
	summary quiz.Summary
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. "New test" swaps the summary for next,
// "Home" closes it.
func New(sum quiz.Summary, next screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		summary: sum,
		buttons: components.NewButtonRow(
			components.NewButton("New test", true, func() tea.Cmd {
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}),
			components.NewButton("Home", false, func() tea.Cmd {
				return router.Pop
			}),
		),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Test Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

// Headline returns the verdict shown above the score.
func (s *SummaryScreen) Headline() string {
	switch {
	case s.summary.Percentage >= 100:
		return "Perfect score!"
	case s.summary.XPAwarded > 0:
		return "Excellent!"
	default:
		return "Test finished"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(c color.Color, text string) string {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(c).
			Render(text)
	}

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.Headline()))
	b.WriteString("\n\n")

	direction := "forward"
	if sum.IsReverse {
		direction = "reverse"
	}
	b.WriteString(center(theme.TextDim, fmt.Sprintf("%s · %s · %s", sum.Dataset, sum.Category.Label(), direction)))
	b.WriteString("\n\n")

	b.WriteString(center(scoreColor(sum.Percentage), fmt.Sprintf("%d%%", sum.Percentage)))
	b.WriteString("\n")
	b.WriteString(center(theme.Text, fmt.Sprintf("Correct: %d        Answered: %d        Skipped: %d",
		sum.Correct, sum.Answered, sum.Unanswered())))
	b.WriteString("\n")
	if sum.XPAwarded > 0 {
		b.WriteString(center(theme.Accent, fmt.Sprintf("+%d XP", sum.XPAwarded)))
		b.WriteString("\n")
	}

	if len(sum.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(center(theme.TextDim, "Review"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		for i, it := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(center(theme.TextDim, fmt.Sprintf("… and %d more", len(sum.Missed)-maxMissedShown)))
				b.WriteString("\n")
				break
			}
			line := it.Infinitive
			if it.HasForms() {
				line += " · " + it.PastSimple + " · " + it.PastParticiple
			}
			b.WriteString(center(theme.Text, line+"  "+lipgloss.NewStyle().Foreground(theme.TextDim).Render(it.Translation)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	if sum.SessionID != "" {
		b.WriteString("\n\n")
		b.WriteString(center(theme.Border, "session "+shortID(sum.SessionID)))
	}
	return b.String()
}

// shortID returns the first block of a uuid.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func scoreColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 50:
		return theme.Warning
	default:
		return theme.Error
	}
}
