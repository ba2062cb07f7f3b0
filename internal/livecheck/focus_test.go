package livecheck

import (
	"testing"
	"time"
)

func TestFocusTrackerNext(t *testing.T) {
	flow := []string{"infinitive", "pastSimple", "pastParticiple"}
	ft := NewFocusTracker[string]()

	if _, ok := ft.Next("infinitive", flow, true, false); ok {
		t.Error("moved focus with autoAdvance off")
	}
	if _, ok := ft.Next("infinitive", flow, false, true); ok {
		t.Error("moved focus for an inexact field")
	}

	next, ok := ft.Next("infinitive", flow, true, true)
	if !ok || next != "pastSimple" {
		t.Fatalf("Next = %q, %v; want pastSimple, true", next, ok)
	}
	if _, ok := ft.Next("infinitive", flow, true, true); ok {
		t.Error("field moved focus twice on one question")
	}
	if _, ok := ft.Next("pastParticiple", flow, true, true); ok {
		t.Error("last field moved focus")
	}
	if _, ok := ft.Next("example", flow, true, true); ok {
		t.Error("field outside the flow moved focus")
	}

	ft.Reset()
	if _, ok := ft.Next("infinitive", flow, true, true); !ok {
		t.Error("Reset did not allow a new move")
	}
}

func TestShouldAutoSubmit(t *testing.T) {
	tests := []struct {
		name      string
		autoCheck bool
		exact     []bool
		want      bool
	}{
		{"all exact", true, []bool{true, true, true}, true},
		{"one wrong", true, []bool{true, false, true}, false},
		{"setting off", false, []bool{true}, false},
		{"no fields", true, nil, false},
	}
	for _, tt := range tests {
		if got := ShouldAutoSubmit(tt.autoCheck, tt.exact...); got != tt.want {
			t.Errorf("%s: ShouldAutoSubmit = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDebouncerLastWins(t *testing.T) {
	d := NewDebouncer[string](DefaultDebounce)

	first := d.Schedule("inf")
	second := d.Schedule("inf")
	other := d.Schedule("ps")

	if second.Delay != 140*time.Millisecond {
		t.Errorf("Delay = %v", second.Delay)
	}
	if d.Fire(first) {
		t.Error("superseded tick fired")
	}
	if !d.Fire(second) {
		t.Error("latest tick did not fire")
	}
	if d.Fire(second) {
		t.Error("tick fired twice")
	}
	if !d.Pending("ps") {
		t.Error("other field lost its tick")
	}

	d.CancelAll()
	if d.Fire(other) {
		t.Error("cancelled tick fired")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer[int](time.Millisecond)
	tick := d.Schedule(1)
	d.Cancel(1)
	if d.Pending(1) || d.Fire(tick) {
		t.Error("cancelled tick still pending")
	}
}
