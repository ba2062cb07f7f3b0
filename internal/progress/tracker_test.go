package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verbiz/internal/store"
)

var day1 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestXPAndStreak(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	tr := Load(ctx, kv, nil, day1)

	assert.Equal(t, 10, tr.AddXP(ctx, 10))
	assert.Equal(t, 1, tr.UpdateStreak(ctx, true))
	assert.Equal(t, 2, tr.UpdateStreak(ctx, true))
	assert.Equal(t, 0, tr.UpdateStreak(ctx, false))
	assert.Equal(t, 1, tr.UpdateStreak(ctx, true))

	assert.Equal(t, 1, tr.Streak())
	assert.Equal(t, 2, tr.BestStreak())

	reloaded := Load(ctx, kv, nil, day1)
	assert.Equal(t, 10, reloaded.XP())
	assert.Equal(t, 1, reloaded.Streak())
	assert.Equal(t, 2, reloaded.BestStreak())

	v, _, _ := kv.Get(ctx, KeyXP)
	assert.Equal(t, "10", v)
}

func TestRecordAnswerRollsOverDay(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	tr := Load(ctx, kv, nil, day1)

	tr.RecordAnswer(ctx, true, day1)
	tr.RecordAnswer(ctx, false, day1.Add(time.Hour))

	assert.Equal(t, SessionStats{Date: "Mon Mar 02 2026", DayStats: DayStats{2, 1, 2}}, tr.Session())
	assert.Equal(t, 2, tr.DailyWordsStudied())

	day2 := day1.AddDate(0, 0, 1)
	tr.RecordAnswer(ctx, true, day2)

	assert.Equal(t, SessionStats{Date: "Tue Mar 03 2026", DayStats: DayStats{1, 1, 1}}, tr.Session())
	assert.Equal(t, 1, tr.DailyWordsStudied())
	assert.Equal(t, []string{"Mon Mar 02 2026", "Tue Mar 03 2026"}, tr.StudyDays())
	assert.Equal(t, DayStats{2, 1, 2}, tr.History()["Mon Mar 02 2026"])

	raw, _, _ := kv.Get(ctx, KeySessionStats)
	assert.JSONEq(t, `{"date":"Tue Mar 03 2026","wordsStudied":1,"correctAnswers":1,"totalAnswers":1}`, raw)
	last, _, _ := kv.Get(ctx, KeyLastStudyDate)
	assert.Equal(t, "Tue Mar 03 2026", last)
}

func TestHistoryIsBounded(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	history := make(map[string]DayStats)
	for i := range 400 {
		history[start.AddDate(0, 0, i).Format(DateLayout)] = DayStats{1, 1, 1}
	}
	require.NoError(t, store.SetJSON(ctx, kv, KeyDailyHistory, history))

	tr := Load(ctx, kv, nil, start)
	latest := start.AddDate(0, 0, 400)
	tr.RecordAnswer(ctx, true, latest)

	h := tr.History()
	assert.Len(t, h, historyKeep)
	assert.Contains(t, h, latest.Format(DateLayout))
	assert.NotContains(t, h, start.Format(DateLayout))
}

func TestStudyDaysBounded(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	days := make([]string, maxStudyDays)
	for i := range days {
		days[i] = fmt.Sprintf("day-%03d", i)
	}
	require.NoError(t, store.SetJSON(ctx, kv, KeyStudyDays, days))

	tr := Load(ctx, kv, nil, day1)
	tr.RecordAnswer(ctx, true, day1)

	got := tr.StudyDays()
	assert.Len(t, got, maxStudyDays)
	assert.Equal(t, "day-001", got[0])
	assert.Equal(t, "Mon Mar 02 2026", got[len(got)-1])
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	for k, v := range map[string]string{
		"theme":                          "dark",
		"lastDataset":                    "words",
		"setting_autoAdvance":            "false",
		"verbStats":                      `{"go":{"correctStreak":1,"errorStreak":0}}`,
		"datasetConfigs":                 `{}`,
		"ivt_test_state_verbs_all_false": `{}`,
	} {
		require.NoError(t, kv.Set(ctx, k, v))
	}

	tr := Load(ctx, kv, nil, day1)
	tr.AddXP(ctx, 40)
	tr.UpdateStreak(ctx, true)
	tr.RecordAnswer(ctx, true, day1)

	require.NoError(t, tr.Reset(ctx, day1))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lastDataset", "setting_autoAdvance", "theme"}, keys)
	assert.Equal(t, 0, tr.XP())
	assert.Equal(t, 0, tr.BestStreak())
	assert.Empty(t, tr.StudyDays())
}
