// Package app hosts the Bubble Tea program: the screen router, the shared
// header and footer, and the terminal rendering of engine feedback.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/screens/home"
	"github.com/abhisek/verbiz/internal/screens/welcome"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

// toastTTL is how long a toast stays in the footer.
const toastTTL = 3 * time.Second

// Options configure Run.
type Options struct {
	Env     *screen.Env
	Effects *Effects

	// Dataset preselects a dataset on the home screen.
	Dataset string
	// StartTest opens the test for Dataset right away.
	StartTest bool
	// Splash shows the welcome animation before the home screen. It is
	// ignored with StartTest.
	Splash bool
}

type toastExpiredMsg struct{ seq uint64 }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     *screen.Env
	effects *Effects
	router  *router.Router
	width   int
	height  int

	shownSeq uint64
}

func newAppModel(opts Options) AppModel {
	effects := opts.Effects
	if effects == nil {
		effects = NewEffects(nil, opts.Env.Log)
	}
	newHome := func() screen.Screen {
		return home.New(opts.Env, opts.Dataset, opts.StartTest)
	}
	var root screen.Screen
	if opts.Splash && !opts.StartTest {
		root = welcome.New(newHome, opts.Env.Settings.Settings().ReduceMotion)
	} else {
		root = newHome()
	}
	return AppModel{
		env:     opts.Env,
		effects: effects,
		router:  router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastExpiredMsg:
		m.effects.Dismiss(msg.seq)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.capturing() {
				if m.router.Depth() > 1 {
					return m, router.Pop
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	m.effects.settle()
	expire := m.expireToast()
	return m, tea.Batch(cmd, expire)
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

// expireToast schedules removal of a toast raised during the last update.
func (m *AppModel) expireToast() tea.Cmd {
	_, _, seq := m.effects.Current()
	if seq == m.shownSeq {
		return nil
	}
	m.shownSeq = seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	p := m.env.Progress
	header := layout.RenderHeader(title, layout.Stats{
		Level:  p.Level(),
		XP:     p.XP(),
		Streak: p.Streak(),
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.status(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// status renders the toast on display as a single footer line.
func (m AppModel) status() string {
	t, confetti, _ := m.effects.Current()
	if t.Title == "" {
		return ""
	}

	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	switch t.Kind {
	case quiz.ToastSuccess:
		style = theme.Correct
	case quiz.ToastError:
		style = theme.Incorrect
	}

	line := style.Render(t.Title)
	if t.Body != "" {
		line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Body)
	}
	if confetti {
		line = "🎉 " + line + " 🎉"
	}
	return line
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
