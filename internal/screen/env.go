package screen

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/progress"
	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/settings"
	"github.com/abhisek/verbiz/internal/vocab"
)

// Env carries the services every screen works against. Screens run on the
// Bubble Tea update goroutine, so none of these need locking.
type Env struct {
	Ctx      context.Context
	Engine   *quiz.Engine
	Registry *vocab.Registry
	Datasets *vocab.Provider
	Configs  *vocab.ConfigStore
	Progress *progress.Tracker
	Mastery  *mastery.Tracker
	Settings *settings.Provider
	Log      logrus.FieldLogger

	// Debounce delays live feedback after a keystroke.
	Debounce time.Duration

	// Intn draws card shuffles. Nil uses the global random source.
	Intn func(int) int
}

// Context returns Ctx, or a background context when unset.
func (e *Env) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
