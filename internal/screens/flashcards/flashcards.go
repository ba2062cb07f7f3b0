// Package flashcards is the card-browsing mode: one word at a time, flipped
// to reveal the answer, with category filtering and shuffling.
package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	cards "github.com/abhisek/verbiz/internal/flashcards"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

// FlashcardsScreen shows the cards of one dataset.
type FlashcardsScreen struct {
	env      *screen.Env
	dataset  string
	title    string
	category mastery.Category
	deck     *cards.Deck
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates the flashcards screen for dataset. Every visit starts with all
// words in dataset order.
func New(env *screen.Env, dataset string) *FlashcardsScreen {
	s := &FlashcardsScreen{
		env:      env,
		dataset:  dataset,
		title:    dataset,
		category: mastery.CategoryAll,
		deck:     cards.NewDeck(env.Intn),
	}
	if ds, err := env.Registry.Get(dataset); err == nil {
		s.title = ds.DisplayTitle()
	}
	s.deck.Reset(env.Datasets.VerbList(dataset, s.category))
	return s
}

func (s *FlashcardsScreen) Init() tea.Cmd { return nil }

func (s *FlashcardsScreen) Title() string {
	return "Flashcards · " + s.title
}

// Category returns the category the deck is filtered by.
func (s *FlashcardsScreen) Category() mastery.Category { return s.category }

// Deck exposes the deck for inspection.
func (s *FlashcardsScreen) Deck() *cards.Deck { return s.deck }

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Card"},
		{Key: "Tab", Description: "Category"},
		{Key: "S", Description: "Shuffle"},
		{Key: "D", Description: "Direction"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) reverse() bool {
	return s.env.Configs.Get(s.env.Context(), s.dataset).IsReverse
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "space", " ", "enter":
		s.deck.Flip()
	case "right", "l", "n":
		s.deck.Next()
	case "left", "h", "p":
		s.deck.Prev()
	case "s":
		s.deck.ToggleShuffle()
	case "tab":
		s.setCategory(s.category.Next())
	case "shift+tab":
		c := s.category
		for range len(mastery.Categories()) - 1 {
			c = c.Next()
		}
		s.setCategory(c)
	case "d":
		ctx := s.env.Context()
		cfg := s.env.Configs.Get(ctx, s.dataset)
		cfg.IsReverse = !cfg.IsReverse
		s.env.Configs.Save(ctx, s.dataset, cfg)
	case "q":
		return s, router.Pop
	}
	return s, nil
}

// setCategory refilters the deck from its first card, keeping the shuffle
// setting.
func (s *FlashcardsScreen) setCategory(c mastery.Category) {
	s.category = c
	s.deck.Load(s.env.Datasets.VerbList(s.dataset, c))
}

func (s *FlashcardsScreen) emptyMessage() string {
	switch s.category {
	case mastery.CategoryHard:
		return "No hard words!"
	case mastery.CategoryProgress:
		return "No words in progress!"
	case mastery.CategoryLearned:
		return "No learned words yet"
	default:
		return "No words"
	}
}

func (s *FlashcardsScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 60)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")

	shuffle := "in order"
	if s.deck.Shuffled() {
		shuffle = "shuffled"
	}
	counter := "0 / 0"
	if !s.deck.Empty() {
		counter = fmt.Sprintf("%d / %d", s.deck.Index()+1, s.deck.Len())
	}
	b.WriteString(center(dim.Render(fmt.Sprintf("%s · %s · %s", s.category.Label(), shuffle, counter))))
	b.WriteString("\n\n")

	item, ok := s.deck.Current()
	if !ok {
		b.WriteString(center(components.Card(theme.Hint.Render(s.emptyMessage()), cw)))
		return b.String()
	}

	front, back := item.Translation, item.Infinitive
	if s.reverse() {
		front, back = back, front
	}

	var card strings.Builder
	card.WriteString(theme.Prompt.Render(front))
	if s.deck.Flipped() {
		card.WriteString("\n\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(back))
		if item.HasForms() {
			card.WriteString("\n")
			card.WriteString(dim.Render(item.Infinitive + " · " + item.PastSimple + " · " + item.PastParticiple))
		}
		if item.Example != "" {
			card.WriteString("\n\n")
			card.WriteString(theme.Hint.Render(item.Example))
		}
		st := s.env.Mastery.Status(item.Key())
		card.WriteString("\n\n")
		card.WriteString(dim.Render(st.Icon() + " " + st.Label()))
	} else {
		card.WriteString("\n\n")
		card.WriteString(theme.Hint.Render("press space to flip"))
	}
	b.WriteString(center(components.Card(card.String(), cw)))
	return b.String()
}
