package quiz

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/vocab"
)

// StorageKeyPrefix starts every saved test slot key.
const StorageKeyPrefix = "ivt_test_state_"

// StorageKey returns the slot key for one dataset, category and direction.
// Each combination has its own slot.
func StorageKey(dataset string, category mastery.Category, isReverse bool) string {
	return fmt.Sprintf("%s%s_%s_%t", StorageKeyPrefix, dataset, category, isReverse)
}

// savedSession is the stored form of a session. Items are not stored; they
// are re-derived from the dataset on restore. TestResults is indexed by the
// original item index with null for unanswered items.
type savedSession struct {
	TestResults      []*Result `json:"testResults"`
	CurrentTestIndex int       `json:"currentTestIndex"`
	IsTestShuffled   bool      `json:"isTestShuffled"`
	TestOrder        []int     `json:"testOrder"`
	LastOrderedIndex int       `json:"lastOrderedIndex"`
}

// Storage saves and restores sessions in a KV store.
type Storage struct {
	kv  store.KV
	log logrus.FieldLogger
}

// NewStorage returns a Storage backed by kv.
func NewStorage(kv store.KV, log logrus.FieldLogger) *Storage {
	return &Storage{kv: kv, log: logging.OrDiscard(log)}
}

// Save writes sess under key. Sessions without items are never written so a
// transient empty state cannot overwrite a real save.
func (s *Storage) Save(ctx context.Context, key string, sess *Session) error {
	if sess == nil || sess.Empty() {
		return nil
	}

	results := make([]*Result, 0, len(sess.Items))
	last := -1
	for idx := range sess.Results {
		if idx > last {
			last = idx
		}
	}
	if last >= 0 {
		results = make([]*Result, last+1)
		for idx, r := range sess.Results {
			results[idx] = r
		}
	}

	return store.SetJSON(ctx, s.kv, key, savedSession{
		TestResults:      results,
		CurrentTestIndex: sess.CurrentIndex,
		IsTestShuffled:   sess.Shuffled,
		TestOrder:        sess.Order,
		LastOrderedIndex: sess.LastOrderedIndex,
	})
}

// Restore reads the session saved under key and rebinds it to items, the
// freshly computed list for the same context. It reports false when there is
// no usable save: the key is missing, the JSON is malformed, the saved order
// does not match len(items) or is not a permutation, the saved position is
// out of range, or a result points past the end of items.
func (s *Storage) Restore(ctx context.Context, key string, items []vocab.Item) (*Session, bool) {
	var saved savedSession
	ok, err := store.GetJSON(ctx, s.kv, key, &saved)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Info("discarding unreadable test state")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	n := len(items)
	log := s.log.WithFields(logrus.Fields{"key": key, "items": n, "saved": len(saved.TestOrder)})
	if !isPermutation(saved.TestOrder, n) {
		log.Debug("saved test order does not fit the item list")
		return nil, false
	}
	if saved.CurrentTestIndex < 0 || saved.CurrentTestIndex >= n {
		log.Debug("saved test position out of range")
		return nil, false
	}

	results := make(map[int]*Result)
	for idx, r := range saved.TestResults {
		if r == nil {
			continue
		}
		if idx >= n {
			log.Debug("saved result outside the item list")
			return nil, false
		}
		r.Item = items[idx]
		results[idx] = r
	}

	lastOrdered := saved.LastOrderedIndex
	if lastOrdered < 0 || lastOrdered >= n {
		lastOrdered = 0
	}

	return &Session{
		Items:            append([]vocab.Item(nil), items...),
		Order:            saved.TestOrder,
		CurrentIndex:     saved.CurrentTestIndex,
		Results:          results,
		Shuffled:         saved.IsTestShuffled,
		LastOrderedIndex: lastOrdered,
	}, true
}

// Clear removes the slot under key.
func (s *Storage) Clear(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

// ClearDataset removes every slot of dataset across all categories and both
// directions.
func (s *Storage) ClearDataset(ctx context.Context, dataset string) error {
	var keys []string
	for _, c := range mastery.Categories() {
		keys = append(keys, StorageKey(dataset, c, false), StorageKey(dataset, c, true))
	}
	return s.kv.Delete(ctx, keys...)
}
