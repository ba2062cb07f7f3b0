// Package home is the start screen: dataset picker, progress overview and
// the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/screens/flashcards"
	"github.com/abhisek/verbiz/internal/screens/history"
	sessionscreen "github.com/abhisek/verbiz/internal/screens/session"
	"github.com/abhisek/verbiz/internal/screens/wordlist"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/vocab"
)

// hardAlertThreshold is the number of hard words that turns the mascot
// alert.
const hardAlertThreshold = 3

var menuLabels = []string{"START TEST", "FLASHCARDS", "WORD LIST", "STATISTICS", "EXIT"}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env       *screen.Env
	menu      components.Menu
	datasets  []string
	dataset   int
	startTest bool

	counts        map[mastery.Status]int
	total         int
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates the home screen with dataset preselected. An empty or unknown
// dataset falls back to the last one opened. With startTest the test opens
// as soon as the program starts.
func New(env *screen.Env, dataset string, startTest bool) *HomeScreen {
	h := &HomeScreen{
		env:       env,
		datasets:  env.Registry.Names(),
		startTest: startTest,
	}

	if dataset == "" {
		dataset = env.Configs.LastDataset(env.Context(), vocab.DefaultDataset)
	}
	dataset = env.Registry.Resolve(dataset)
	for i, name := range h.datasets {
		if name == dataset {
			h.dataset = i
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: menuLabels[0], Action: h.openTest},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return router.Push(flashcards.New(env, h.Dataset()))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return router.Push(wordlist.New(env, h.Dataset()))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return router.Push(history.New(env))
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	})
	h.recount()
	return h
}

// Dataset returns the selected dataset name.
func (h *HomeScreen) Dataset() string {
	if len(h.datasets) == 0 {
		return ""
	}
	return h.datasets[h.dataset]
}

func (h *HomeScreen) openTest() tea.Cmd {
	if h.Dataset() == "" {
		return nil
	}
	return router.Push(sessionscreen.New(h.env, h.Dataset()))
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.startTest {
		h.startTest = false
		return h.openTest()
	}
	return nil
}

// Refresh recomputes the overview after a test or reset.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.recount()
	return nil
}

func (h *HomeScreen) recount() {
	items := h.env.Datasets.AllItems(h.Dataset())
	h.total = len(items)
	h.counts = h.env.Mastery.Counts(vocab.Keys(items))

	goal := h.env.Settings.Settings().DailyGoal
	switch {
	case goal > 0 && h.env.Progress.DailyWordsStudied() >= goal:
		h.mascotVariant = MascotCelebrating
	case h.counts[mastery.StatusHard] >= hardAlertThreshold:
		h.mascotVariant = MascotAlert
	default:
		h.mascotVariant = MascotIdle
	}
}

func (h *HomeScreen) cycleDataset(step int) {
	n := len(h.datasets)
	if n < 2 {
		return
	}
	h.dataset = (h.dataset + step + n) % n
	h.env.Configs.SetLastDataset(h.env.Context(), h.Dataset())
	h.recount()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			h.cycleDataset(-1)
			return h, nil
		case "right", "l", "tab":
			h.cycleDataset(1)
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Dataset"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer rows.
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderDatasetPicker(h.datasetTitle(), len(h.datasets) > 1, cw))
	sections = append(sections, renderStatsBar(h.counts, h.total, h.env.Progress.DailyWordsStudied(), h.env.Settings.Settings().DailyGoal, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) datasetTitle() string {
	ds, err := h.env.Registry.Get(h.Dataset())
	if err != nil {
		return "no datasets"
	}
	return ds.DisplayTitle()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
