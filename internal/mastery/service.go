package mastery

import (
	"context"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/store"
)

// StatsKey is the storage key of the mastery map.
const StatsKey = "verbStats"

// Tracker owns the mastery map of every item ever graded and persists it
// under StatsKey after each change.
type Tracker struct {
	kv      store.KV
	log     logrus.FieldLogger
	records map[string]*Record
}

// Load reads the mastery map from kv. A missing or unreadable map starts
// empty; the stored value is left untouched until the next write.
func Load(ctx context.Context, kv store.KV, log logrus.FieldLogger) *Tracker {
	t := &Tracker{kv: kv, log: logging.OrDiscard(log)}
	t.Reload(ctx)
	return t
}

// Reload discards the in-memory map and reads it again from storage.
func (t *Tracker) Reload(ctx context.Context) {
	records := make(map[string]*Record)
	if _, err := store.GetJSON(ctx, t.kv, StatsKey, &records); err != nil {
		t.log.WithError(err).WithField("key", StatsKey).Warn("mastery map unreadable, starting empty")
		records = make(map[string]*Record)
	}
	for k, r := range records {
		if r == nil {
			delete(records, k)
		}
	}
	t.records = records
}

// Record applies a graded answer for key and persists the map.
// It returns the updated record.
func (t *Tracker) Record(ctx context.Context, key string, correct bool) Record {
	r, ok := t.records[key]
	if !ok {
		r = &Record{}
		t.records[key] = r
	}
	r.Apply(correct)
	t.save(ctx)
	return *r
}

// Get returns a copy of the record for key.
func (t *Tracker) Get(key string) (Record, bool) {
	r, ok := t.records[key]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Status classifies the item stored under key.
func (t *Tracker) Status(key string) Status {
	return Classify(t.records[key])
}

// Delete removes the records for keys and persists the map.
func (t *Tracker) Delete(ctx context.Context, keys ...string) {
	removed := 0
	for _, k := range keys {
		if _, ok := t.records[k]; ok {
			delete(t.records, k)
			removed++
		}
	}
	if removed > 0 {
		t.save(ctx)
	}
}

// Counts tallies the status of each key. Every status is present in the
// result, possibly with a zero count.
func (t *Tracker) Counts(keys []string) map[Status]int {
	counts := lo.CountValuesBy(keys, t.Status)
	for _, s := range []Status{StatusNotStarted, StatusHard, StatusProgress, StatusLearned} {
		if _, ok := counts[s]; !ok {
			counts[s] = 0
		}
	}
	return counts
}

// Len returns the number of tracked items.
func (t *Tracker) Len() int {
	return len(t.records)
}

func (t *Tracker) save(ctx context.Context) {
	if err := store.SetJSON(ctx, t.kv, StatsKey, t.records); err != nil {
		t.log.WithError(err).WithField("key", StatsKey).Warn("persist mastery map failed")
	}
}
