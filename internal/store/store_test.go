package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStoreGetSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "xp")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report ok=false")

	require.NoError(t, s.Set(ctx, "xp", "10"))
	require.NoError(t, s.Set(ctx, "xp", "20"))

	v, ok, err := s.Get(ctx, "xp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "20", v)
}

func TestStoreKeysDeleteClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, s.Set(ctx, k, k))
	}

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	require.NoError(t, s.Delete(ctx, "a", "c", "missing"))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)

	require.NoError(t, s.Clear(ctx))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "lastDataset", "verbs"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "lastDataset")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "verbs", v)
}

func TestJSONHelpers(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	type rec struct {
		CorrectStreak int `json:"correctStreak"`
	}
	require.NoError(t, SetJSON(ctx, kv, "verbStats", map[string]rec{"go": {CorrectStreak: 2}}))

	var got map[string]rec
	ok, err := GetJSON(ctx, kv, "verbStats", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, got["go"].CorrectStreak)

	require.NoError(t, kv.Set(ctx, "broken", "{not json"))
	_, err = GetJSON(ctx, kv, "broken", &got)
	assert.Error(t, err)

	assert.Equal(t, 7, GetInt(ctx, kv, "missing", 7))
	require.NoError(t, kv.Set(ctx, "xp", "abc"))
	assert.Equal(t, 0, GetInt(ctx, kv, "xp", 0), "unparsable int falls back")
	require.NoError(t, SetInt(ctx, kv, "xp", 42))
	assert.Equal(t, 42, GetInt(ctx, kv, "xp", 0))
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, src.Set(ctx, "xp", "120"))
	require.NoError(t, src.Set(ctx, "setting_autoAdvance", "false"))
	require.NoError(t, src.Set(ctx, "ivt_test_state_verbs_all_false", `{"testResults":[],"currentTestIndex":1}`))

	var buf bytes.Buffer
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Export(ctx, src, &buf, now))

	var envelope Backup
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	assert.Equal(t, BackupType, envelope.Type)
	assert.Equal(t, BackupVersion, envelope.Version)
	assert.Len(t, envelope.LocalStorage, 3)

	dst := NewMemory()
	require.NoError(t, dst.Set(ctx, "stale", "x"))

	res, err := Import(ctx, dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, ImportSnapshot, res.Mode)
	assert.Equal(t, 3, res.RestoredKeys)

	_, ok, _ := dst.Get(ctx, "stale")
	assert.False(t, ok, "import must replace existing keys")

	v, _, _ := dst.Get(ctx, "ivt_test_state_verbs_all_false")
	assert.Equal(t, `{"testResults":[],"currentTestIndex":1}`, v)
}

func TestImportSnapshotSkipsNull(t *testing.T) {
	kv := NewMemory()
	payload := `{"type":"ivt-backup","version":2,"localStorage":{"xp":"5","gone":null}}`

	res, err := Import(context.Background(), kv, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, res.RestoredKeys)
	assert.Equal(t, 1, kv.Len())
}

func TestImportLegacy(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	payload := `{
		"verbStats": {"go": {"correctStreak": 1, "errorStreak": 0}},
		"xp": 250,
		"streak": 3,
		"bestStreak": 7,
		"studyDays": ["Mon Mar 02 2026"],
		"theme": "dark",
		"settings": {"autoAdvance": false, "animSpeed": "fast", "dailyGoal": 20}
	}`

	res, err := Import(ctx, kv, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, ImportLegacy, res.Mode)

	tests := map[string]string{
		"xp":                  "250",
		"streak":              "3",
		"bestStreak":          "7",
		"theme":               "dark",
		"studyDays":           `["Mon Mar 02 2026"]`,
		"setting_autoAdvance": "false",
		"setting_animSpeed":   "fast",
		"setting_dailyGoal":   "20",
	}
	for key, want := range tests {
		got, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		if assert.True(t, ok, key) {
			assert.Equal(t, want, got, key)
		}
	}

	var stats map[string]map[string]int
	ok, err := GetJSON(ctx, kv, "verbStats", &stats)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, stats["go"]["correctStreak"])
}

func TestImportRejectsNonObject(t *testing.T) {
	tests := []string{
		`[1,2,3]`,
		`"backup"`,
		`{"localStorage": []}`,
		`{not json`,
	}
	for _, payload := range tests {
		_, err := Import(context.Background(), NewMemory(), strings.NewReader(payload))
		if !errors.Is(err, ErrInvalidBackup) {
			t.Errorf("Import(%s) err = %v, want ErrInvalidBackup", payload, err)
		}
	}
}
