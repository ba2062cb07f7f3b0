package quiz

import (
	"context"
	"time"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/settings"
	"github.com/abhisek/verbiz/internal/vocab"
)

// DatasetProvider supplies the items of a dataset.
type DatasetProvider interface {
	// VerbList returns the items of dataset in category, in dataset order.
	VerbList(dataset string, category mastery.Category) []vocab.Item
	// AllItems returns every item of dataset.
	AllItems(dataset string) []vocab.Item
	// HasForms reports whether dataset carries past tense forms.
	HasForms(dataset string) bool
}

// SettingsProvider exposes the current user settings.
type SettingsProvider interface {
	Settings() settings.Settings
}

// MasteryTracker records graded answers per item key.
type MasteryTracker interface {
	Record(ctx context.Context, key string, correct bool) mastery.Record
	Delete(ctx context.Context, keys ...string)
}

// Rewards receives XP, streak and daily statistics updates.
type Rewards interface {
	AddXP(ctx context.Context, n int) int
	// UpdateStreak returns the streak after applying the answer.
	UpdateStreak(ctx context.Context, correct bool) int
	RecordAnswer(ctx context.Context, correct bool, now time.Time)
}

// HapticPattern is a vibration pattern in alternating on/off durations.
type HapticPattern []time.Duration

var (
	HapticSuccess = HapticPattern{50 * time.Millisecond}
	HapticError   = HapticPattern{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}
	HapticTick    = HapticPattern{30 * time.Millisecond}
)

// Sound names a feedback sound.
type Sound string

const (
	SoundCorrect Sound = "correct"
	SoundWrong   Sound = "wrong"
	SoundFinish  Sound = "finish"
)

// ToastKind is the severity of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is a short notification.
type Toast struct {
	Kind  ToastKind
	Title string
	Body  string
}

// Effects renders feedback the engine triggers but does not own. The engine
// checks the haptics, sound and confetti settings before calling it.
type Effects interface {
	Haptic(p HapticPattern)
	Sound(s Sound)
	Toast(t Toast)
	Confetti()
}

type nopEffects struct{}

func (nopEffects) Haptic(HapticPattern) {}
func (nopEffects) Sound(Sound)          {}
func (nopEffects) Toast(Toast)          {}
func (nopEffects) Confetti()            {}
