package history

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/verbiz/internal/screen/screentest"
)

func TestHistoryScreen_Title(t *testing.T) {
	s := New(screentest.NewEnv(t))
	if s.Title() != "Statistics" {
		t.Errorf("Title = %q, want %q", s.Title(), "Statistics")
	}
}

func TestHistoryScreen_EmptyHistory(t *testing.T) {
	s := New(screentest.NewEnv(t))
	s.Init()
	view := s.View(100, 40)
	if !strings.Contains(view, "No study days yet") {
		t.Error("expected the empty history message")
	}
	if !strings.Contains(view, "Irregular verbs") {
		t.Error("expected a mastery row per dataset")
	}
}

func TestHistoryScreen_ListsDays(t *testing.T) {
	env := screentest.NewEnv(t)
	ctx := context.Background()
	env.Progress.RecordAnswer(ctx, true, screentest.Now)
	env.Progress.RecordAnswer(ctx, false, screentest.Now)
	env.Mastery.Record(ctx, "go", true)

	s := New(env)
	s.Init()
	if len(s.days) != 1 {
		t.Fatalf("days = %d, want 1", len(s.days))
	}
	if got := s.datasets[0].counts["progress"]; got != 1 {
		t.Errorf("verbs in progress = %d, want 1", got)
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "Mar 02, 2026") {
		t.Error("expected the study day in the list")
	}
	if strings.Contains(view, "correct of") {
		t.Error("day details should be collapsed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 40), "1 correct of 2 answers") {
		t.Error("expected expanded day details")
	}
}

func TestHistoryScreen_SelectionBounds(t *testing.T) {
	s := New(screentest.NewEnv(t))
	s.Init()
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0 with no days", s.selected)
	}
}
