// Package wordlist lists the items of a dataset grouped by mastery status.
package wordlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
	"github.com/abhisek/verbiz/internal/vocab"
)

// groupOrder is the order status groups are listed in.
var groupOrder = []mastery.Status{
	mastery.StatusHard,
	mastery.StatusProgress,
	mastery.StatusNotStarted,
	mastery.StatusLearned,
}

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowItem
)

type row struct {
	kind   rowKind
	status mastery.Status
	count  int
	item   vocab.Item
}

// WordListScreen displays every item of a dataset with its status.
type WordListScreen struct {
	env          *screen.Env
	dataset      string
	title        string
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*WordListScreen)(nil)
var _ screen.Refresher = (*WordListScreen)(nil)

// New creates a word list for dataset.
func New(env *screen.Env, dataset string) *WordListScreen {
	s := &WordListScreen{env: env, dataset: dataset, title: dataset}
	if ds, err := env.Registry.Get(dataset); err == nil {
		s.title = ds.DisplayTitle()
	}
	s.build()
	return s
}

// build groups the dataset items by status, keeping dataset order inside
// each group.
func (s *WordListScreen) build() {
	groups := make(map[mastery.Status][]vocab.Item)
	for _, it := range s.env.Datasets.AllItems(s.dataset) {
		st := s.env.Mastery.Status(it.Key())
		groups[st] = append(groups[st], it)
	}

	s.rows = s.rows[:0]
	for _, st := range groupOrder {
		items := groups[st]
		if len(items) == 0 {
			continue
		}
		s.rows = append(s.rows, row{kind: rowGroupHeader, status: st, count: len(items)})
		for _, it := range items {
			s.rows = append(s.rows, row{kind: rowItem, status: st, item: it})
		}
	}

	s.cursor = min(s.cursor, len(s.rows)-1)
	if s.cursor < 0 || (s.rows[s.cursor].kind != rowItem) {
		s.cursor = 0
		s.moveCursor(1)
	}
}

func (s *WordListScreen) Init() tea.Cmd {
	return nil
}

// Refresh regroups the items after a detail screen is closed.
func (s *WordListScreen) Refresh() tea.Cmd {
	s.build()
	return nil
}

func (s *WordListScreen) Title() string {
	return "Word List · " + s.title
}

// KeyHints returns the key binding hints for the footer.
func (s *WordListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Group"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			if len(s.rows) > 0 {
				s.nextGroup()
			}
		case "shift+tab":
			if len(s.rows) > 0 {
				s.prevGroup()
			}
		case "enter":
			return s, s.selectItem()
		case "q":
			return s, router.Pop
		}
	}
	return s, nil
}

// Selected returns the item under the cursor.
func (s *WordListScreen) Selected() (vocab.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowItem {
		return vocab.Item{}, false
	}
	return s.rows[s.cursor].item, true
}

func (s *WordListScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		msg := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("This dataset has no words.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, s.renderGroupHeader(r, width))
		case rowItem:
			lines = append(lines, s.renderItemRow(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

// moveCursor moves the cursor by delta, skipping group headers.
func (s *WordListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowItem {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextGroup jumps to the first item of the next group.
func (s *WordListScreen) nextGroup() {
	current := s.rows[s.cursor].status
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowItem && s.rows[i].status != current {
			s.cursor = i
			return
		}
	}
}

// prevGroup jumps to the first item of the previous group.
func (s *WordListScreen) prevGroup() {
	current := s.rows[s.cursor].status
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowGroupHeader && s.rows[i].status != current {
			s.cursor = i
			s.moveCursor(1)
			return
		}
	}
}

// adjustScroll keeps the cursor and its group header inside the viewport.
func (s *WordListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	if top > 0 && s.rows[top-1].kind == rowGroupHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *WordListScreen) selectItem() tea.Cmd {
	it, ok := s.Selected()
	if !ok {
		return nil
	}
	return router.Push(newItemDetail(s.env, it))
}

func (s *WordListScreen) renderGroupHeader(r row, width int) string {
	name := strings.ToUpper(r.status.Label())
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(fmt.Sprintf("%s (%d)", name, r.count))
}

func (s *WordListScreen) renderItemRow(r row, selected bool, width int) string {
	const (
		indent     = 4
		iconWidth  = 3
		transWidth = 24
		spacing    = 4
	)
	wordWidth := max(width-indent-iconWidth-transWidth-spacing, 10)

	word := r.item.Infinitive
	if r.item.HasForms() {
		word += " · " + r.item.PastSimple + " · " + r.item.PastParticiple
	}
	word = truncate(word, wordWidth)

	wordStyle := lipgloss.NewStyle().Foreground(theme.Text)
	transStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	iconStyle := lipgloss.NewStyle().Foreground(statusColor(r.status))
	cursor := "  "
	if selected {
		wordStyle = wordStyle.Foreground(theme.Primary).Bold(true)
		transStyle = transStyle.Foreground(theme.Primary)
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s",
		cursor,
		iconStyle.Render(r.status.Icon()),
		wordStyle.Render(fmt.Sprintf("%-*s", wordWidth, word)),
		transStyle.Render(truncate(r.item.Translation, transWidth)),
	)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
