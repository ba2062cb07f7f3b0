package app

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/quiz"
)

// Effects renders engine feedback in the terminal: toasts become the footer
// status line, sounds ring the bell, confetti decorates the status. A
// terminal cannot vibrate, so haptics are only logged.
type Effects struct {
	bell io.Writer
	log  logrus.FieldLogger

	toast    quiz.Toast
	confetti bool
	seq      uint64

	// pending carries confetti fired before the toast it belongs to.
	pending bool
}

var _ quiz.Effects = (*Effects)(nil)

// NewEffects returns a sink that rings the bell on bell. A nil writer keeps
// the terminal silent.
func NewEffects(bell io.Writer, log logrus.FieldLogger) *Effects {
	return &Effects{bell: bell, log: logging.OrDiscard(log)}
}

func (e *Effects) Haptic(p quiz.HapticPattern) {
	e.log.WithField("pulses", len(p)).Trace("haptic")
}

func (e *Effects) Sound(s quiz.Sound) {
	if e.bell == nil {
		return
	}
	if _, err := io.WriteString(e.bell, "\a"); err != nil {
		e.log.WithError(err).WithField("sound", s).Debug("bell failed")
	}
}

func (e *Effects) Toast(t quiz.Toast) {
	e.toast = t
	e.confetti = e.pending
	e.pending = false
	e.seq++
}

// Confetti decorates the toast currently shown, or the next one when it
// arrives within the same update.
func (e *Effects) Confetti() {
	e.confetti = true
	e.pending = true
}

// settle ends an update: confetti no longer carries over to later toasts.
func (e *Effects) settle() {
	e.pending = false
}

// Current returns the toast on display and its sequence number. The
// sequence is zero until the first toast.
func (e *Effects) Current() (quiz.Toast, bool, uint64) {
	return e.toast, e.confetti, e.seq
}

// Dismiss clears the toast when seq is still the one on display.
func (e *Effects) Dismiss(seq uint64) {
	if seq == e.seq {
		e.toast = quiz.Toast{}
		e.confetti = false
	}
}
