package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/vocab"
)

func threeWords() []vocab.Item {
	return []vocab.Item{
		{Infinitive: "house", Translation: "дом"},
		{Infinitive: "cat", Translation: "кот"},
		{Infinitive: "dog/hound", Translation: "собака"},
	}
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "ivt_test_state_verbs_all_false", StorageKey("verbs", mastery.CategoryAll, false))
	assert.Equal(t, "ivt_test_state_words_hard_true", StorageKey("words", mastery.CategoryHard, true))
	assert.NotEqual(t,
		StorageKey("verbs", mastery.CategoryHard, false),
		StorageKey("verbs", mastery.CategoryHard, true))
}

func TestStorageSaveWritesNullHoles(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewStorage(kv, nil)

	sess := newSession(threeWords())
	sess.CurrentIndex = 2
	sess.Results[1] = &Result{Item: sess.Items[1], AllCorrect: true}
	require.NoError(t, s.Save(ctx, "slot", sess))

	var saved map[string]any
	ok, err := store.GetJSON(ctx, kv, "slot", &saved)
	require.NoError(t, err)
	require.True(t, ok)

	results := saved["testResults"].([]any)
	require.Len(t, results, 2)
	assert.Nil(t, results[0])
	assert.Equal(t, "cat", results[1].(map[string]any)["verb"].(map[string]any)["infinitive"])
	assert.EqualValues(t, 2, saved["currentTestIndex"])
	assert.Equal(t, false, saved["isTestShuffled"])
	assert.Equal(t, []any{0.0, 1.0, 2.0}, saved["testOrder"])
}

func TestStorageSaveSkipsEmptySession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewStorage(kv, nil)

	require.NoError(t, s.Save(ctx, "slot", newSession(nil)))
	assert.Equal(t, 0, kv.Len())
}

func TestStorageRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewStorage(kv, nil)
	items := threeWords()

	sess := newSession(items)
	sess.Order = []int{2, 0, 1}
	sess.Shuffled = true
	sess.CurrentIndex = 1
	sess.LastOrderedIndex = 2
	sess.Results[2] = &Result{
		Item:       items[2],
		Answers:    map[Field]string{FieldInfinitive: "hound"},
		Correct:    map[Field]bool{FieldInfinitive: true},
		AllCorrect: true,
	}
	require.NoError(t, s.Save(ctx, "slot", sess))

	got, ok := s.Restore(ctx, "slot", items)
	require.True(t, ok)
	assert.Equal(t, sess.Order, got.Order)
	assert.Equal(t, 1, got.CurrentIndex)
	assert.Equal(t, 2, got.LastOrderedIndex)
	assert.True(t, got.Shuffled)
	assert.Equal(t, sess.Results, got.Results)
	assert.Equal(t, items, got.Items)
}

func TestStorageRestoreRejects(t *testing.T) {
	items := threeWords()

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"testResults": [`},
		{"order too short", `{"testResults":[],"currentTestIndex":0,"testOrder":[0,1]}`},
		{"order too long", `{"testResults":[],"currentTestIndex":0,"testOrder":[0,1,2,3]}`},
		{"duplicate index", `{"testResults":[],"currentTestIndex":0,"testOrder":[0,1,1]}`},
		{"index out of range", `{"testResults":[],"currentTestIndex":0,"testOrder":[0,1,5]}`},
		{"position past end", `{"testResults":[],"currentTestIndex":3,"testOrder":[0,1,2]}`},
		{"negative position", `{"testResults":[],"currentTestIndex":-1,"testOrder":[0,1,2]}`},
		{"result past end", `{"testResults":[null,null,null,{"allCorrect":true}],"currentTestIndex":0,"testOrder":[0,1,2]}`},
		{"missing order", `{"testResults":[],"currentTestIndex":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory()
			require.NoError(t, kv.Set(ctx, "slot", tt.raw))

			_, ok := NewStorage(kv, nil).Restore(ctx, "slot", items)
			assert.False(t, ok)
		})
	}
}

func TestStorageRestoreRebindsResultItems(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewStorage(kv, nil)

	sess := newSession(threeWords())
	sess.Results[1] = &Result{Item: sess.Items[1], AllCorrect: false}
	require.NoError(t, s.Save(ctx, "slot", sess))

	edited := threeWords()
	edited[1].Translation = "кошка"
	got, ok := s.Restore(ctx, "slot", edited)
	require.True(t, ok)
	require.Contains(t, got.Results, 1)
	assert.Equal(t, edited[1], got.Results[1].Item)
}

func TestStorageRestoreMissingKey(t *testing.T) {
	_, ok := NewStorage(store.NewMemory(), nil).Restore(context.Background(), "nothing", threeWords())
	assert.False(t, ok)
}

func TestStorageRestoreClampsLastOrderedIndex(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "slot",
		`{"testResults":[null,{"skipped":true}],"currentTestIndex":1,"isTestShuffled":true,"testOrder":[1,2,0],"lastOrderedIndex":9}`))

	got, ok := NewStorage(kv, nil).Restore(ctx, "slot", threeWords())
	require.True(t, ok)
	assert.Equal(t, 0, got.LastOrderedIndex)
	assert.Len(t, got.Results, 1)
	assert.True(t, got.Results[1].Skipped)
	assert.Equal(t, 0, got.Answered(), "legacy skipped results do not count as answered")
}

func TestStorageClearDataset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewStorage(kv, nil)

	for _, c := range mastery.Categories() {
		for _, rev := range []bool{false, true} {
			require.NoError(t, kv.Set(ctx, StorageKey("verbs", c, rev), "{}"))
			require.NoError(t, kv.Set(ctx, StorageKey("words", c, rev), "{}"))
		}
	}
	require.Equal(t, 16, kv.Len())

	require.NoError(t, s.ClearDataset(ctx, "verbs"))
	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 8)
	for _, k := range keys {
		assert.Contains(t, k, "_words_")
	}

	require.NoError(t, s.Clear(ctx, StorageKey("words", mastery.CategoryLearned, true)))
	assert.Equal(t, 7, kv.Len())
}

func TestShuffleIntsIsPermutation(t *testing.T) {
	s := identity(10)
	calls := 0
	ShuffleInts(s, func(n int) int {
		calls++
		return n - 1
	})
	assert.Equal(t, 9, calls)
	assert.True(t, isPermutation(s, 10))
	assert.False(t, isPermutation([]int{0, 0}, 2))
	assert.False(t, isPermutation([]int{0, 1}, 3))
	assert.True(t, isPermutation(nil, 0))
}
