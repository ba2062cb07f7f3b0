// Package session is the test screen: one question at a time, typed
// answers with live feedback, and the test controls.
package session

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	"github.com/abhisek/verbiz/internal/livecheck"
	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/screens/summary"
	"github.com/abhisek/verbiz/internal/ui/components"
	"github.com/abhisek/verbiz/internal/ui/layout"
	"github.com/abhisek/verbiz/internal/vocab"
)

const inputWidth = 28

// SessionScreen implements screen.Screen for a running test.
type SessionScreen struct {
	env     *screen.Env
	dataset string
	config  vocab.DatasetConfig

	fields []quiz.Field
	inputs map[quiz.Field]*components.TextInput
	active int

	focus    *livecheck.FocusTracker[quiz.Field]
	debounce *livecheck.Debouncer[quiz.Field]

	confirm *components.Choice

	events      []quiz.Event
	unsubscribe func()
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.InputCapturer = (*SessionScreen)(nil)

// New creates a test screen for dataset. The category and direction come
// from the dataset's saved config.
func New(env *screen.Env, dataset string) *SessionScreen {
	delay := env.Debounce
	if delay <= 0 {
		delay = livecheck.DefaultDebounce
	}
	return &SessionScreen{
		env:      env,
		dataset:  dataset,
		config:   env.Configs.Get(env.Context(), dataset),
		inputs:   make(map[quiz.Field]*components.TextInput),
		focus:    livecheck.NewFocusTracker[quiz.Field](),
		debounce: livecheck.NewDebouncer[quiz.Field](delay),
	}
}

// Init subscribes to the engine and enters the saved test context.
func (s *SessionScreen) Init() tea.Cmd {
	if s.unsubscribe == nil {
		s.unsubscribe = s.env.Engine.Subscribe(func(ev quiz.Event) {
			s.events = append(s.events, ev)
		})
	}
	s.env.Configs.SetLastDataset(s.env.Context(), s.dataset)
	s.env.Engine.Enter(s.env.Context(), s.dataset, s.config.Category, s.config.IsReverse)
	return s.drain()
}

func (s *SessionScreen) Title() string {
	if ds, err := s.env.Registry.Get(s.dataset); err == nil {
		return ds.DisplayTitle()
	}
	return "Test"
}

// CapturesInput keeps typed letters and Esc inside the screen.
func (s *SessionScreen) CapturesInput() bool { return true }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.env.Engine.Empty() {
		return []layout.KeyHint{
			{Key: "^T", Description: "Category"},
			{Key: "^D", Description: "Direction"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.env.Engine.Answered() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "←→", Description: "Navigate"},
			{Key: "^R", Description: "Shuffle"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Tab", Description: "Field"},
		{Key: "^S", Description: "Skip"},
	}
	if s.env.Settings.Settings().ShowHints {
		hints = append(hints, layout.KeyHint{Key: "^G", Description: "Hint"})
	}
	return append(hints,
		layout.KeyHint{Key: "^R", Description: "Shuffle"},
		layout.KeyHint{Key: "^T", Description: "Category"},
		layout.KeyHint{Key: "^D", Description: "Direction"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case liveTickMsg:
		return s, s.handleLiveTick(msg)

	case autoAdvanceMsg:
		s.env.Engine.FireAutoAdvance(s.env.Context(), msg.Token)
		return s, s.drain()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	// Cursor blink and similar input housekeeping.
	if in := s.activeInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := s.env.Context()
	eng := s.env.Engine
	key := msg.String()

	if s.confirm != nil {
		return s.handleConfirm(msg)
	}

	switch key {
	case "esc":
		return s.leave()
	case "ctrl+t":
		s.config.Category = s.config.Category.Next()
		return s.reenter()
	case "ctrl+d":
		s.config.IsReverse = !s.config.IsReverse
		return s.reenter()
	case "ctrl+x":
		c := components.NewChoice("Reset progress for this dataset?", []string{"Keep progress", "Reset"}, 1)
		s.confirm = &c
		return nil
	}

	if eng.Empty() {
		return nil
	}

	switch key {
	case "ctrl+r":
		eng.ToggleShuffle(ctx)
		return s.drain()
	case "ctrl+s":
		eng.Skip(ctx)
		return s.drain()
	case "ctrl+n", "pgdown":
		eng.Navigate(ctx, quiz.Next, true)
		return s.drain()
	case "ctrl+p", "pgup":
		eng.Navigate(ctx, quiz.Prev, true)
		return s.drain()
	}

	if eng.Answered() {
		switch key {
		case "enter", "right", "l":
			eng.Navigate(ctx, quiz.Next, true)
			return s.drain()
		case "left", "h":
			eng.Navigate(ctx, quiz.Prev, true)
			return s.drain()
		}
		return nil
	}

	switch key {
	case "enter":
		if s.active < len(s.fields)-1 {
			return s.setActive(s.active + 1)
		}
		return s.submit()
	case "tab", "down":
		return s.setActive((s.active + 1) % max(len(s.fields), 1))
	case "shift+tab", "up":
		return s.setActive((s.active - 1 + len(s.fields)) % max(len(s.fields), 1))
	case "ctrl+g":
		return s.hint()
	}

	return s.typeInto(msg)
}

// typeInto forwards a key to the focused input and schedules live feedback
// when its value changed.
func (s *SessionScreen) typeInto(msg tea.Msg) tea.Cmd {
	in := s.activeInput()
	if in == nil {
		return nil
	}
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return cmd
	}
	in.Feedback = livecheck.Feedback{}
	return tea.Batch(cmd, s.schedule(s.fields[s.active]))
}

func (s *SessionScreen) schedule(f quiz.Field) tea.Cmd {
	t := s.debounce.Schedule(f)
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return liveTickMsg{Tick: t}
	})
}

// handleLiveTick classifies the field, then tries auto-submit and
// auto-focus the way a pause in typing does.
func (s *SessionScreen) handleLiveTick(msg liveTickMsg) tea.Cmd {
	if !s.debounce.Fire(msg.Tick) {
		return nil
	}
	eng := s.env.Engine
	if eng.Answered() {
		return nil
	}
	f := msg.Tick.Key
	in, ok := s.inputs[f]
	if !ok {
		return nil
	}

	set := s.env.Settings.Settings()
	if set.LiveCheck {
		in.Feedback = livecheck.Classify(in.Value(), eng.Expected(f))
	}

	exact := lo.Map(s.fields, func(f quiz.Field, _ int) bool {
		return livecheck.ExactlyCorrect(s.inputs[f].Value(), eng.Expected(f))
	})
	if livecheck.ShouldAutoSubmit(set.AutoCheck, exact...) {
		return s.submit()
	}

	idx := lo.IndexOf(s.fields, f)
	if next, ok := s.focus.Next(f, s.fields, exact[idx], set.AutoAdvance); ok {
		return s.setActive(lo.IndexOf(s.fields, next))
	}
	return nil
}

func (s *SessionScreen) submit() tea.Cmd {
	answers := make(map[quiz.Field]string, len(s.fields))
	for _, f := range s.fields {
		answers[f] = s.inputs[f].Value()
	}
	s.env.Engine.SubmitAnswer(s.env.Context(), answers)
	return s.drain()
}

func (s *SessionScreen) hint() tea.Cmd {
	if !s.env.Settings.Settings().ShowHints {
		return nil
	}
	in := s.activeInput()
	if in == nil {
		return nil
	}
	f := s.fields[s.active]
	v, ok := s.env.Engine.GiveHint(f, in.Value())
	if !ok {
		return nil
	}
	in.SetValue(v)
	in.Feedback = livecheck.Feedback{}
	return s.schedule(f)
}

func (s *SessionScreen) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		s.confirm = nil
		return nil
	}
	c, _ := s.confirm.Update(msg)
	s.confirm = &c
	choice, done := c.Chosen()
	if !done {
		return nil
	}
	s.confirm = nil
	if choice == 1 {
		s.debounce.CancelAll()
		s.env.Engine.Reset(s.env.Context())
		return s.drain()
	}
	return nil
}

// reenter saves the changed category or direction and switches the engine
// to that context.
func (s *SessionScreen) reenter() tea.Cmd {
	s.debounce.CancelAll()
	s.env.Configs.Save(s.env.Context(), s.dataset, s.config)
	s.env.Engine.Enter(s.env.Context(), s.dataset, s.config.Category, s.config.IsReverse)
	return s.drain()
}

func (s *SessionScreen) leave() tea.Cmd {
	s.detach()
	return router.Pop
}

func (s *SessionScreen) detach() {
	s.debounce.CancelAll()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.events = nil
}

// drain applies the engine events raised by the last call and arms the
// auto-advance timer when one is pending.
func (s *SessionScreen) drain() tea.Cmd {
	var cmds []tea.Cmd
	for len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]

		switch ev.Kind {
		case quiz.QuestionChanged:
			cmds = append(cmds, s.rebuild())
		case quiz.AnswerChecked:
			s.grade(ev.Result)
		case quiz.SessionFinished:
			sum := *ev.Summary
			s.detach()
			cmds = append(cmds, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary.New(sum, s)}
			})
			return tea.Batch(cmds...)
		}
	}

	if t, ok := s.env.Engine.AutoAdvance(); ok {
		token := t.Token
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return autoAdvanceMsg{Token: token}
		}))
	}
	return tea.Batch(cmds...)
}

// rebuild creates fresh inputs for the question on screen. Answered
// questions show the submitted answers, graded.
func (s *SessionScreen) rebuild() tea.Cmd {
	eng := s.env.Engine
	s.debounce.CancelAll()
	s.focus.Reset()
	s.fields = eng.RequiredFields()
	s.inputs = make(map[quiz.Field]*components.TextInput, len(s.fields))
	s.active = 0

	for _, f := range s.fields {
		label := f.Label()
		if f == quiz.FieldInfinitive && eng.Context().IsReverse {
			label = "Translation"
		}
		in := components.NewTextInput(label, "", inputWidth)
		s.inputs[f] = &in
	}

	if res := eng.CurrentResult(); res != nil && !res.Skipped {
		s.grade(res)
		return nil
	}
	return s.setActive(0)
}

func (s *SessionScreen) grade(res *quiz.Result) {
	if res == nil {
		return
	}
	s.debounce.CancelAll()
	s.focus.Reset()
	for _, f := range s.fields {
		in := s.inputs[f]
		in.SetValue(res.Answers[f])
		in.Grade(res.Correct[f])
	}
}

func (s *SessionScreen) setActive(i int) tea.Cmd {
	if i < 0 || i >= len(s.fields) {
		return nil
	}
	for j, f := range s.fields {
		if j != i {
			s.inputs[f].Blur()
		}
	}
	s.active = i
	in := s.inputs[s.fields[i]]
	if in.Graded() {
		return nil
	}
	return in.Focus()
}

func (s *SessionScreen) activeInput() *components.TextInput {
	if s.active < 0 || s.active >= len(s.fields) {
		return nil
	}
	return s.inputs[s.fields[s.active]]
}
