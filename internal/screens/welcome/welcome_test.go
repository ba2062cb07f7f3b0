package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/router"
	"github.com/abhisek/verbiz/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(reduceMotion bool) (*WelcomeScreen, *int) {
	calls := 0
	w := New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}, reduceMotion)
	return w, &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome(false)

	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 4)
	if w.elapsed != phase1End {
		t.Errorf("elapsed = %v, want %v", w.elapsed, phase1End)
	}

	sendTicks(w, 8)
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should be visible after the second phase")
	}
}

func TestElapsedCapped(t *testing.T) {
	w, calls := newTestWelcome(false)
	sendTicks(w, 60)
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *calls != 0 {
		t.Errorf("next built %d times without a key press", *calls)
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once the animation is done")
	}
}

func TestKeypressDuringAnimationFinishesIt(t *testing.T) {
	w, calls := newTestWelcome(false)
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("first key should only finish the animation")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *calls != 0 {
		t.Error("next should not be built yet")
	}
}

func TestKeypressAfterAnimationReplaces(t *testing.T) {
	w, calls := newTestWelcome(false)
	sendTicks(w, 30)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress after animation")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Home" {
		t.Errorf("replacement = %q, want Home", msg.Screen.Title())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("next built %d times, want 1", *calls)
	}
}

func TestReduceMotionSkipsAnimation(t *testing.T) {
	w, _ := newTestWelcome(true)
	if w.Init() != nil {
		t.Error("reduced motion should not tick")
	}
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should be visible immediately")
	}
	if _, cmd := w.Update(tea.KeyPressMsg{Code: ' '}); cmd == nil {
		t.Error("first key should move on")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome(false)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
