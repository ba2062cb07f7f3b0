// Package screentest builds in-memory screen environments for tests.
package screentest

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/progress"
	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/screen"
	"github.com/abhisek/verbiz/internal/settings"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/vocab"
)

// Now is the fixed clock of every environment built here.
var Now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// Verbs returns a small dataset with past tense forms.
func Verbs() *vocab.Dataset {
	return &vocab.Dataset{Name: "verbs", Title: "Irregular verbs", Items: []vocab.Item{
		{Infinitive: "go", Translation: "идти", PastSimple: "went", PastParticiple: "gone", Example: "I went home."},
		{Infinitive: "see", Translation: "видеть", PastSimple: "saw", PastParticiple: "seen"},
		{Infinitive: "take", Translation: "брать", PastSimple: "took", PastParticiple: "taken"},
	}}
}

// Words returns a small dataset without forms.
func Words() *vocab.Dataset {
	return &vocab.Dataset{Name: "words", Items: []vocab.Item{
		{Infinitive: "dog", Translation: "собака"},
		{Infinitive: "cat", Translation: "кошка"},
	}}
}

// NewEnv wires an environment over a fresh in-memory store. Without
// datasets it uses Verbs and Words.
func NewEnv(t testing.TB, datasets ...*vocab.Dataset) *screen.Env {
	t.Helper()
	if len(datasets) == 0 {
		datasets = []*vocab.Dataset{Verbs(), Words()}
	}
	ctx := context.Background()
	kv := store.NewMemory()

	reg := vocab.NewStaticRegistry(datasets...)
	m := mastery.Load(ctx, kv, nil)
	prov := vocab.NewProvider(reg, m)
	sp := settings.NewProvider(ctx, kv, nil)
	p := progress.Load(ctx, kv, nil, Now)

	eng := quiz.New(quiz.Deps{
		KV:       kv,
		Datasets: prov,
		Settings: sp,
		Mastery:  m,
		Rewards:  p,
	},
		quiz.WithRand(rand.New(rand.NewPCG(1, 2))),
		quiz.WithClock(func() time.Time { return Now }),
	)

	return &screen.Env{
		Ctx:      ctx,
		Engine:   eng,
		Registry: reg,
		Datasets: prov,
		Configs:  vocab.NewConfigStore(kv, nil),
		Progress: p,
		Mastery:  m,
		Settings: sp,
		Debounce: 10 * time.Millisecond,
		Intn:     rand.New(rand.NewPCG(3, 4)).IntN,
	}
}
