// Package progress tracks experience points, answer streaks and daily study
// statistics.
package progress

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/store"
)

// Storage keys.
const (
	KeyXP                = "xp"
	KeyStreak            = "streak"
	KeyBestStreak        = "bestStreak"
	KeySessionStats      = "sessionStats"
	KeyDailyWordsStudied = "dailyWordsStudied"
	KeyDailyHistory      = "dailyHistory"
	KeyStudyDays         = "studyDays"
	KeyLastStudyDate     = "lastStudyDate"
)

// DateLayout formats calendar days in stored statistics.
const DateLayout = "Mon Jan 02 2006"

const (
	maxStudyDays      = 365
	historyPruneAbove = 400
	historyKeep       = 365
)

// preservedKeys survive a progress reset along with every setting.
var preservedKeys = []string{"theme", "lastDataset", "lastTab"}

// DayStats counts answers given on one day.
type DayStats struct {
	WordsStudied   int `json:"wordsStudied"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalAnswers   int `json:"totalAnswers"`
}

// SessionStats is today's running tally.
type SessionStats struct {
	Date string `json:"date"`
	DayStats
}

// Tracker owns XP, streaks and daily statistics, persisting each change.
type Tracker struct {
	kv  store.KV
	log logrus.FieldLogger

	xp         int
	streak     int
	bestStreak int

	session       SessionStats
	dailyWords    int
	history       map[string]DayStats
	studyDays     []string
	lastStudyDate string
}

// Load reads progress from kv. Missing or malformed values start at zero.
func Load(ctx context.Context, kv store.KV, log logrus.FieldLogger, now time.Time) *Tracker {
	t := &Tracker{kv: kv, log: logging.OrDiscard(log)}
	t.load(ctx, now)
	return t
}

func (t *Tracker) load(ctx context.Context, now time.Time) {
	t.xp = store.GetInt(ctx, t.kv, KeyXP, 0)
	t.streak = store.GetInt(ctx, t.kv, KeyStreak, 0)
	t.bestStreak = store.GetInt(ctx, t.kv, KeyBestStreak, 0)
	t.dailyWords = store.GetInt(ctx, t.kv, KeyDailyWordsStudied, 0)
	t.lastStudyDate = store.GetString(ctx, t.kv, KeyLastStudyDate, "")

	t.session = SessionStats{Date: now.Format(DateLayout)}
	t.readJSON(ctx, KeySessionStats, &t.session)

	t.history = make(map[string]DayStats)
	t.readJSON(ctx, KeyDailyHistory, &t.history)
	if t.history == nil {
		t.history = make(map[string]DayStats)
	}

	t.studyDays = nil
	t.readJSON(ctx, KeyStudyDays, &t.studyDays)
}

func (t *Tracker) readJSON(ctx context.Context, key string, v any) {
	if _, err := store.GetJSON(ctx, t.kv, key, v); err != nil {
		t.log.WithError(err).WithField("key", key).Warn("stored progress unreadable, using default")
	}
}

func (t *Tracker) XP() int         { return t.xp }
func (t *Tracker) Streak() int     { return t.streak }
func (t *Tracker) BestStreak() int { return t.bestStreak }
func (t *Tracker) Level() int      { return LevelFor(t.xp) }

// DailyWordsStudied returns the answers given today.
func (t *Tracker) DailyWordsStudied() int { return t.dailyWords }

// Session returns today's running tally.
func (t *Tracker) Session() SessionStats { return t.session }

// StudyDays returns the days with at least one answer, oldest first.
func (t *Tracker) StudyDays() []string { return append([]string(nil), t.studyDays...) }

// History returns a copy of the per-day answer counts.
func (t *Tracker) History() map[string]DayStats {
	out := make(map[string]DayStats, len(t.history))
	for k, v := range t.history {
		out[k] = v
	}
	return out
}

// AddXP adds n points and returns the new total.
func (t *Tracker) AddXP(ctx context.Context, n int) int {
	t.xp += n
	t.setInt(ctx, KeyXP, t.xp)
	return t.xp
}

// UpdateStreak extends the streak on a correct answer and resets it
// otherwise. It returns the new streak.
func (t *Tracker) UpdateStreak(ctx context.Context, correct bool) int {
	if correct {
		t.streak++
		if t.streak > t.bestStreak {
			t.bestStreak = t.streak
			t.setInt(ctx, KeyBestStreak, t.bestStreak)
		}
	} else {
		t.streak = 0
	}
	t.setInt(ctx, KeyStreak, t.streak)
	return t.streak
}

// RecordAnswer counts one graded answer towards today's statistics. The
// session tally and daily word count roll over when the day changes.
func (t *Tracker) RecordAnswer(ctx context.Context, correct bool, now time.Time) {
	today := now.Format(DateLayout)

	if t.session.Date != today {
		t.session = SessionStats{Date: today}
		t.dailyWords = 0
	}
	t.session.WordsStudied++
	t.session.TotalAnswers++
	if correct {
		t.session.CorrectAnswers++
	}
	t.setJSON(ctx, KeySessionStats, t.session)

	t.dailyWords++
	t.setInt(ctx, KeyDailyWordsStudied, t.dailyWords)

	day := t.history[today]
	day.WordsStudied++
	day.TotalAnswers++
	if correct {
		day.CorrectAnswers++
	}
	t.history[today] = day
	if len(t.history) > historyPruneAbove {
		t.history = pruneHistory(t.history, historyKeep)
	}
	t.setJSON(ctx, KeyDailyHistory, t.history)

	if t.lastStudyDate != today {
		t.lastStudyDate = today
		t.set(ctx, KeyLastStudyDate, today)

		if !lo.Contains(t.studyDays, today) {
			t.studyDays = append(t.studyDays, today)
			if len(t.studyDays) > maxStudyDays {
				t.studyDays = t.studyDays[len(t.studyDays)-maxStudyDays:]
			}
			t.setJSON(ctx, KeyStudyDays, t.studyDays)
		}
	}
}

// pruneHistory keeps the keep most recent days. Keys that do not parse as
// dates sort first and are dropped before real days.
func pruneHistory(h map[string]DayStats, keep int) map[string]DayStats {
	keys := lo.Keys(h)
	sort.Slice(keys, func(i, j int) bool {
		a, errA := time.Parse(DateLayout, keys[i])
		b, errB := time.Parse(DateLayout, keys[j])
		switch {
		case errA != nil && errB != nil:
			return keys[i] < keys[j]
		case errA != nil:
			return true
		case errB != nil:
			return false
		}
		return a.Before(b)
	})
	if len(keys) > keep {
		keys = keys[len(keys)-keep:]
	}
	out := make(map[string]DayStats, len(keys))
	for _, k := range keys {
		out[k] = h[k]
	}
	return out
}

// Reset wipes all learning progress. The theme, last location and every
// setting are kept.
func (t *Tracker) Reset(ctx context.Context, now time.Time) error {
	keys, err := t.kv.Keys(ctx)
	if err != nil {
		return err
	}
	doomed := lo.Filter(keys, func(k string, _ int) bool {
		return !strings.HasPrefix(k, "setting_") && !lo.Contains(preservedKeys, k)
	})
	if err := t.kv.Delete(ctx, doomed...); err != nil {
		return err
	}
	t.load(ctx, now)
	return nil
}

func (t *Tracker) set(ctx context.Context, key, value string) {
	if err := t.kv.Set(ctx, key, value); err != nil {
		t.log.WithError(err).WithField("key", key).Warn("persist progress failed")
	}
}

func (t *Tracker) setInt(ctx context.Context, key string, n int) {
	if err := store.SetInt(ctx, t.kv, key, n); err != nil {
		t.log.WithError(err).WithField("key", key).Warn("persist progress failed")
	}
}

func (t *Tracker) setJSON(ctx context.Context, key string, v any) {
	if err := store.SetJSON(ctx, t.kv, key, v); err != nil {
		t.log.WithError(err).WithField("key", key).Warn("persist progress failed")
	}
}
