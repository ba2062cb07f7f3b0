package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirm != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.confirm.View())
	}
	if s.env.Engine.Empty() {
		return s.renderEmpty(width, height)
	}
	return s.renderQuestionView(width)
}

// renderInfoLine shows the test context on the left and the position and
// score on the right.
func (s *SessionScreen) renderInfoLine(width int) string {
	eng := s.env.Engine
	ctx := eng.Context()

	direction := "→"
	if ctx.IsReverse {
		direction = "←"
	}
	left := fmt.Sprintf("  %s  %s", ctx.Category.Label(), direction)
	if eng.Shuffled() {
		left += "  ⤮"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(left)

	idx, total := eng.Position()
	sess := eng.Session()
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			idx+1, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sess.CorrectCount(),
		))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

func (s *SessionScreen) renderQuestionView(width int) string {
	eng := s.env.Engine
	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")

	sess := eng.Session()
	bar := components.NewProgressBar("", components.Fraction(sess.Answered(), sess.Len()), true, max(width-4, 10))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Inherit(theme.Prompt).
		Render(eng.Prompt())
	b.WriteString(prompt)
	b.WriteString("\n\n")

	var rows []string
	for _, f := range s.fields {
		row := s.inputs[f].View()
		if eng.HintUsed(f) && !s.inputs[f].Graded() {
			row += " " + theme.Hint.Render("(hint)")
		}
		rows = append(rows, row)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	if res := eng.CurrentResult(); res != nil && !res.Skipped {
		b.WriteString(s.renderVerdict(res, width))
	}
	return b.String()
}

// renderVerdict shows the outcome of the question on screen and, for wrong
// answers, the expected values.
func (s *SessionScreen) renderVerdict(res *quiz.Result, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if res.AllCorrect {
		return center.Inherit(theme.Correct).Render("Correct!")
	}

	var missed []string
	for _, f := range s.fields {
		if !res.Correct[f] {
			missed = append(missed, s.env.Engine.Expected(f))
		}
	}
	out := center.Inherit(theme.Incorrect).Render("Not quite")
	out += "\n" + center.Foreground(theme.TextDim).Render("Correct answer: "+strings.Join(missed, ", "))
	if ex := res.Item.Example; ex != "" {
		out += "\n\n" + center.Inherit(theme.Hint).Render(ex)
	}
	return out
}

func (s *SessionScreen) renderEmpty(width, height int) string {
	ctx := s.env.Engine.Context()
	msg := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("No words in %q", ctx.Category.Label()))
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Press Ctrl+T to pick another category.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg+"\n\n"+sub)
}
