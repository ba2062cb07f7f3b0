package session

import (
	"github.com/abhisek/verbiz/internal/livecheck"
	"github.com/abhisek/verbiz/internal/quiz"
)

// liveTickMsg is delivered when the debounce period of a field ends.
type liveTickMsg struct {
	Tick livecheck.Tick[quiz.Field]
}

// autoAdvanceMsg is delivered when the pause after a correct answer ends.
type autoAdvanceMsg struct {
	Token uint64
}
