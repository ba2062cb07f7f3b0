// Package history shows learning statistics: totals, per-dataset mastery
// and the daily answer history.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/progress"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
	"github.com/abhisek/verbiz/internal/vocab"
)

// maxDays is the number of history days listed.
const maxDays = 30

type datasetRow struct {
	title  string
	total  int
	counts map[mastery.Status]int
}

// HistoryScreen displays progress statistics and past study days.
type HistoryScreen struct {
	env      *screen.Env
	days     []progress.Day
	datasets []datasetRow
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	s.days = s.env.Progress.RecentDays(maxDays)
	s.datasets = s.datasets[:0]
	for _, name := range s.env.Registry.Names() {
		ds, err := s.env.Registry.Get(name)
		if err != nil {
			continue
		}
		s.datasets = append(s.datasets, datasetRow{
			title:  ds.DisplayTitle(),
			total:  len(ds.Items),
			counts: s.env.Mastery.Counts(vocab.Keys(ds.Items)),
		})
	}
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Statistics"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.days)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	p := s.env.Progress
	cw := components.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")

	totals := p.Totals()
	stats := fmt.Sprintf("Level %d · %d XP   🔥 %d (best %d)   %d study days   %d%% accuracy",
		p.Level(), p.XP(), p.Streak(), p.BestStreak(), len(p.StudyDays()), totals.Accuracy())
	b.WriteString(center(components.StatsBox(lipgloss.NewStyle().Foreground(theme.Text).Render(stats), min(cw+20, width-4))))
	b.WriteString("\n\n")

	goal := s.env.Settings.Settings().DailyGoal
	today := p.DailyWordsStudied()
	if goal > 0 {
		bar := components.NewProgressBar(fmt.Sprintf("Today %d/%d", today, goal), components.Fraction(today, goal), true, cw)
		if today >= goal {
			bar.Fill = theme.Success
		}
		b.WriteString(center(bar.View()))
		b.WriteString("\n\n")
	}

	for _, ds := range s.datasets {
		learned := ds.counts[mastery.StatusLearned]
		bar := components.NewProgressBar(fmt.Sprintf("%-14s", ds.title), components.Fraction(learned, ds.total), true, cw)
		bar.Fill = theme.Success
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
		b.WriteString(center(dim.Render(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
			mastery.StatusLearned.Icon(), learned,
			mastery.StatusProgress.Icon(), ds.counts[mastery.StatusProgress],
			mastery.StatusHard.Icon(), ds.counts[mastery.StatusHard],
			mastery.StatusNotStarted.Icon(), ds.counts[mastery.StatusNotStarted],
		))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.days) == 0 {
		b.WriteString(center(dim.Italic(true).Render("No study days yet. Start a test!")))
		return b.String()
	}

	for i, d := range s.days {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %3d words  %3d%% accuracy",
			prefix, d.Date.Format("Jan 02, 2006"), d.WordsStudied, d.Accuracy())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(center(dim.Italic(true).Render(fmt.Sprintf("    %d correct of %d answers",
				d.CorrectAnswers, d.TotalAnswers))))
			b.WriteString("\n")
		}
	}

	return b.String()
}
