package quiz

import (
	"context"
	"math"
	"time"
)

// DefaultAutoAdvanceDelay is the pause after a fully correct answer before
// moving on, at normal animation speed.
const DefaultAutoAdvanceDelay = 550 * time.Millisecond

// Timer is a pending auto-advance. The front end waits Delay and then calls
// FireAutoAdvance with Token.
type Timer struct {
	Token uint64
	Delay time.Duration
}

// AutoAdvance returns the armed auto-advance timer, if any.
func (e *Engine) AutoAdvance() (Timer, bool) {
	if e.timer == nil {
		return Timer{}, false
	}
	return *e.timer, true
}

// FireAutoAdvance moves to the next question when token belongs to the
// armed timer. Stale tokens are ignored and false is returned.
func (e *Engine) FireAutoAdvance(ctx context.Context, token uint64) bool {
	if e.timer == nil || e.timer.Token != token {
		return false
	}
	e.timer = nil
	e.Navigate(ctx, Next, true)
	return true
}

func (e *Engine) armAutoAdvance() {
	s := e.settings.Settings()
	var delay time.Duration
	if !s.ReduceMotion {
		delay = time.Duration(math.Round(float64(e.autoAdvanceDelay) * s.AnimMultiplier()))
	}
	e.timerSeq++
	e.timer = &Timer{Token: e.timerSeq, Delay: delay}
}

func (e *Engine) cancelAutoAdvance() {
	e.timer = nil
}
