package wordlist

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
	"github.com/abhisek/verbiz/internal/vocab"
)

// ItemDetailScreen shows one item with its mastery record.
type ItemDetailScreen struct {
	item   vocab.Item
	record mastery.Record
	status mastery.Status
}

var _ screen.Screen = (*ItemDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ItemDetailScreen)(nil)

func newItemDetail(env *screen.Env, it vocab.Item) *ItemDetailScreen {
	rec, _ := env.Mastery.Get(it.Key())
	return &ItemDetailScreen{
		item:   it,
		record: rec,
		status: env.Mastery.Status(it.Key()),
	}
}

func (d *ItemDetailScreen) Init() tea.Cmd { return nil }
func (d *ItemDetailScreen) Title() string { return d.item.Infinitive }

func (d *ItemDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *ItemDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *ItemDetailScreen) View(width, height int) string {
	it := d.item
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", d.status.Icon(), it.Infinitive)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(statusColor(d.status)).
		Render("  " + d.status.Label()))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(dimStyle.Render("  Translation:     ") + valStyle.Render(it.Translation) + "\n")
	if it.PastSimple != "" {
		b.WriteString(dimStyle.Render("  Past simple:     ") + valStyle.Render(it.PastSimple) + "\n")
	}
	if it.PastParticiple != "" {
		b.WriteString(dimStyle.Render("  Past participle: ") + valStyle.Render(it.PastParticiple) + "\n")
	}
	b.WriteString("\n")

	if it.Example != "" {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
			components.Card(theme.Hint.Render(it.Example), contentWidth)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Progress"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d correct in a row, %d wrong in a row",
		d.record.CorrectStreak, d.record.ErrorStreak)))
	b.WriteString("\n")
	if d.status != mastery.StatusLearned {
		left := mastery.LearnedStreak - d.record.CorrectStreak
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d more correct to learn", left)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

func statusColor(s mastery.Status) color.Color {
	switch s {
	case mastery.StatusLearned:
		return theme.Success
	case mastery.StatusProgress:
		return theme.Secondary
	case mastery.StatusHard:
		return theme.Error
	default:
		return theme.TextDim
	}
}
