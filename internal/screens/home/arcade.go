package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

const arcadeTitleFull = ` ██╗   ██╗███████╗██████╗ ██████╗ ██╗███████╗
 ██║   ██║██╔════╝██╔══██╗██╔══██╗██║╚══███╔╝
 ██║   ██║█████╗  ██████╔╝██████╔╝██║  ███╔╝
 ╚██╗ ██╔╝██╔══╝  ██╔══██╗██╔══██╗██║ ███╔╝
  ╚████╔╝ ███████╗██║  ██║██████╔╝██║███████╗
   ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "V · E · R · B · I · Z"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderDatasetPicker shows the selected dataset with arrows when there is
// more than one to choose from.
func renderDatasetPicker(title string, cycle bool, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title)
	if cycle {
		arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
		label = arrow.Render("◂  ") + label + arrow.Render("  ▸")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(label)
}

// renderStatsBar renders the dataset mastery and today's goal.
func renderStatsBar(counts map[mastery.Status]int, total, today, goal, cw int, compact bool) string {
	learnedStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	hardStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	goalStyle := lipgloss.NewStyle().Foreground(theme.Frame).Bold(true)

	learned := counts[mastery.StatusLearned]
	hard := counts[mastery.StatusHard]

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			learnedStyle.Render(fmt.Sprintf("★%d/%d", learned, total)),
			hardStyle.Render(fmt.Sprintf("✗%d", hard)),
			goalStyle.Render(goalText(today, goal, true)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			learnedStyle.Render(fmt.Sprintf("★ %d/%d LEARNED", learned, total)),
			hardStyle.Render(fmt.Sprintf("✗ %d HARD", hard)),
			goalStyle.Render(goalText(today, goal, false)),
		)
	}
	return components.StatsBox(stats, cw)
}

func goalText(today, goal int, compact bool) string {
	if goal <= 0 {
		if compact {
			return fmt.Sprintf("◎%d", today)
		}
		return fmt.Sprintf("◎ %d TODAY", today)
	}
	if compact {
		return fmt.Sprintf("◎%d/%d", today, goal)
	}
	return fmt.Sprintf("◎ %d/%d TODAY", today, goal)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// too small for bordered buttons.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
