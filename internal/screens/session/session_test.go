package session

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/livecheck"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/screen/screentest"
	"github.com/abhisek/verbiz/internal/vocab"
)

func newTestScreen(t *testing.T, dataset string) (*screen.Env, *SessionScreen) {
	t.Helper()
	env := screentest.NewEnv(t)
	s := New(env, dataset)
	s.Init()
	return env, s
}

func key(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// collect runs cmd and returns the messages it produces, descending into
// batches. Commands that do not return promptly, like cursor blinks, are
// dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestSessionScreen_Title(t *testing.T) {
	_, s := newTestScreen(t, "verbs")
	if s.Title() != "Irregular verbs" {
		t.Errorf("Title = %q, want %q", s.Title(), "Irregular verbs")
	}
	_, s = newTestScreen(t, "words")
	if s.Title() != "words" {
		t.Errorf("Title = %q, want the dataset name", s.Title())
	}
}

func TestSessionScreen_InitBuildsInputs(t *testing.T) {
	env, s := newTestScreen(t, "verbs")
	if !env.Engine.Entered() {
		t.Fatal("engine not entered")
	}
	if len(s.fields) != 3 {
		t.Fatalf("fields = %d, want 3 for an item with forms", len(s.fields))
	}
	if !s.inputs[quiz.FieldInfinitive].Focused() {
		t.Error("first input should be focused")
	}
	if got := env.Configs.LastDataset(context.Background(), ""); got != "verbs" {
		t.Errorf("last dataset = %q, want %q", got, "verbs")
	}
	if !strings.Contains(s.View(80, 24), "идти") {
		t.Error("view should show the prompt")
	}
}

func TestSessionScreen_TypeAndSubmit(t *testing.T) {
	env, s := newTestScreen(t, "words")

	typeText(s, "dog")
	if got := s.inputs[quiz.FieldInfinitive].Value(); got != "dog" {
		t.Fatalf("value = %q, want %q", got, "dog")
	}
	if !s.debounce.Pending(quiz.FieldInfinitive) {
		t.Error("typing should schedule live feedback")
	}

	_, cmd := s.Update(key(tea.KeyEnter, 0))
	if !env.Engine.Answered() {
		t.Fatal("Enter on the last field should submit")
	}
	if !s.inputs[quiz.FieldInfinitive].Graded() {
		t.Error("input should be graded")
	}
	if cmd == nil {
		t.Error("a correct answer should arm auto-advance")
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("view should show the verdict")
	}
	if env.Mastery.Status("dog") != mastery.StatusProgress {
		t.Errorf("status = %q, want progress", env.Mastery.Status("dog"))
	}
}

func TestSessionScreen_WrongAnswerShowsExpected(t *testing.T) {
	_, s := newTestScreen(t, "words")
	s.inputs[quiz.FieldInfinitive].SetValue("zzz")
	s.Update(key(tea.KeyEnter, 0))

	view := s.View(80, 24)
	if !strings.Contains(view, "Not quite") {
		t.Error("view should show the wrong verdict")
	}
	if !strings.Contains(view, "Correct answer: dog") {
		t.Error("view should show the expected answer")
	}
}

func TestSessionScreen_EnterMovesToNextField(t *testing.T) {
	env, s := newTestScreen(t, "verbs")
	s.inputs[quiz.FieldInfinitive].SetValue("go")

	s.Update(key(tea.KeyEnter, 0))
	if env.Engine.Answered() {
		t.Fatal("Enter on the first field should not submit")
	}
	if s.active != 1 {
		t.Errorf("active = %d, want 1", s.active)
	}

	s.Update(key(tea.KeyTab, tea.ModShift))
	if s.active != 0 {
		t.Errorf("after shift+tab active = %d, want 0", s.active)
	}
}

func TestSessionScreen_LiveTick(t *testing.T) {
	env, s := newTestScreen(t, "words")
	in := s.inputs[quiz.FieldInfinitive]
	in.SetValue("do")

	stale := s.debounce.Schedule(quiz.FieldInfinitive)
	fresh := s.debounce.Schedule(quiz.FieldInfinitive)

	s.Update(liveTickMsg{Tick: stale})
	if in.Feedback.State != livecheck.StateNone {
		t.Errorf("stale tick classified the field: %q", in.Feedback.State)
	}

	s.Update(liveTickMsg{Tick: fresh})
	if in.Feedback.State != livecheck.StateProgress {
		t.Errorf("feedback = %q, want progress", in.Feedback.State)
	}
	if env.Engine.Answered() {
		t.Error("a partial answer must not submit")
	}
}

func TestSessionScreen_LiveTickAutoSubmits(t *testing.T) {
	env, s := newTestScreen(t, "words")
	s.inputs[quiz.FieldInfinitive].SetValue("dog")

	s.Update(liveTickMsg{Tick: s.debounce.Schedule(quiz.FieldInfinitive)})
	if !env.Engine.Answered() {
		t.Fatal("an exact answer should auto-submit")
	}
	if res := env.Engine.CurrentResult(); res == nil || !res.AllCorrect {
		t.Error("auto-submitted answer should be correct")
	}
}

func TestSessionScreen_LiveTickWithoutAutoCheck(t *testing.T) {
	env, s := newTestScreen(t, "words")
	if err := env.Settings.Set(context.Background(), "autoCheck", "false"); err != nil {
		t.Fatal(err)
	}
	s.inputs[quiz.FieldInfinitive].SetValue("dog")

	s.Update(liveTickMsg{Tick: s.debounce.Schedule(quiz.FieldInfinitive)})
	if env.Engine.Answered() {
		t.Error("auto-check off should leave the answer unsubmitted")
	}
	if s.inputs[quiz.FieldInfinitive].Feedback.State != livecheck.StateOK {
		t.Error("live check should still mark the field")
	}
}

func TestSessionScreen_Hint(t *testing.T) {
	env, s := newTestScreen(t, "words")
	s.Update(key('g', tea.ModCtrl))
	if got := s.inputs[quiz.FieldInfinitive].Value(); got != "d" {
		t.Errorf("hint value = %q, want %q", got, "d")
	}
	if !env.Engine.HintUsed(quiz.FieldInfinitive) {
		t.Error("hint should be recorded")
	}
}

func TestSessionScreen_CtrlHIsNotHint(t *testing.T) {
	env, s := newTestScreen(t, "words")
	s.Update(key('h', tea.ModCtrl))
	if env.Engine.HintUsed(quiz.FieldInfinitive) {
		t.Error("ctrl+h must not reveal a hint")
	}
}

func TestSessionScreen_EmptyCategory(t *testing.T) {
	env := screentest.NewEnv(t)
	ctx := context.Background()
	env.Configs.Save(ctx, "words", vocab.DatasetConfig{Category: mastery.CategoryHard})

	s := New(env, "words")
	s.Init()
	if !env.Engine.Empty() {
		t.Fatal("no hard words yet, session should be empty")
	}
	if !strings.Contains(s.View(80, 24), "No words in") {
		t.Error("view should show the empty state")
	}

	s.Update(key('t', tea.ModCtrl))
	if got := env.Configs.Get(ctx, "words").Category; got != mastery.CategoryProgress {
		t.Errorf("category = %q, want %q", got, mastery.CategoryProgress)
	}
}

func TestSessionScreen_ResetConfirm(t *testing.T) {
	env, s := newTestScreen(t, "words")
	s.inputs[quiz.FieldInfinitive].SetValue("dog")
	s.Update(key(tea.KeyEnter, 0))

	s.Update(key('x', tea.ModCtrl))
	if s.confirm == nil {
		t.Fatal("ctrl+x should open the confirm dialog")
	}
	s.Update(key(tea.KeyEscape, 0))
	if s.confirm != nil {
		t.Fatal("esc should close the dialog")
	}
	if env.Mastery.Status("dog") == mastery.StatusNotStarted {
		t.Fatal("cancel must keep progress")
	}

	s.Update(key('x', tea.ModCtrl))
	s.Update(key(tea.KeyRight, 0))
	s.Update(key(tea.KeyEnter, 0))
	if s.confirm != nil {
		t.Error("dialog should close after choosing")
	}
	if env.Mastery.Status("dog") != mastery.StatusNotStarted {
		t.Error("reset should clear mastery")
	}
	if env.Engine.Answered() {
		t.Error("reset should start a fresh session")
	}
}

func TestSessionScreen_EscPops(t *testing.T) {
	_, s := newTestScreen(t, "words")
	_, cmd := s.Update(key(tea.KeyEscape, 0))
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("esc = %T, want PopScreenMsg", cmd())
	}
	if s.unsubscribe != nil {
		t.Error("leaving should unsubscribe from the engine")
	}
}

func TestSessionScreen_FinishShowsSummary(t *testing.T) {
	env, s := newTestScreen(t, "words")

	s.inputs[quiz.FieldInfinitive].SetValue("dog")
	s.Update(key(tea.KeyEnter, 0))
	s.Update(key(tea.KeyEnter, 0))
	if item, _ := env.Engine.CurrentItem(); item.Infinitive != "cat" {
		t.Fatalf("current = %q, want %q", item.Infinitive, "cat")
	}

	s.inputs[quiz.FieldInfinitive].SetValue("cat")
	s.Update(key(tea.KeyEnter, 0))
	_, cmd := s.Update(key(tea.KeyEnter, 0))

	var replaced *router.ReplaceScreenMsg
	for _, msg := range collect(cmd) {
		if m, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = &m
		}
	}
	if replaced == nil {
		t.Fatal("finishing should replace the screen with the summary")
	}
	if replaced.Screen.Title() != "Test Summary" {
		t.Errorf("replacement = %q, want the summary", replaced.Screen.Title())
	}
	if !strings.Contains(replaced.Screen.View(80, 30), "100%") {
		t.Error("summary should show a perfect score")
	}
	if s.unsubscribe != nil {
		t.Error("finished screen should unsubscribe")
	}
	if env.Engine.Session().Answered() != 0 {
		t.Error("a new session should have started")
	}
}

func TestSessionScreen_StaleAutoAdvance(t *testing.T) {
	env, s := newTestScreen(t, "words")
	s.inputs[quiz.FieldInfinitive].SetValue("dog")
	s.Update(key(tea.KeyEnter, 0))

	timer, ok := env.Engine.AutoAdvance()
	if !ok {
		t.Fatal("auto-advance should be armed")
	}
	s.Update(autoAdvanceMsg{Token: timer.Token + 1})
	if item, _ := env.Engine.CurrentItem(); item.Infinitive != "dog" {
		t.Error("stale token must not advance")
	}
	s.Update(autoAdvanceMsg{Token: timer.Token})
	if item, _ := env.Engine.CurrentItem(); item.Infinitive != "cat" {
		t.Errorf("current = %q, want %q", item.Infinitive, "cat")
	}
}
