// Package quiz runs typed vocabulary tests: it builds ordered or shuffled
// question sequences, grades answers, and saves progress per dataset,
// category and direction.
package quiz

import (
	"maps"

	"github.com/samber/lo"

	"github.com/abhisek/verbiz/internal/vocab"
)

// Field names an answer input.
type Field string

const (
	FieldInfinitive     Field = "infinitive"
	FieldPastSimple     Field = "pastSimple"
	FieldPastParticiple Field = "pastParticiple"
)

// Fields lists every answer field in input order.
var Fields = []Field{FieldInfinitive, FieldPastSimple, FieldPastParticiple}

// Label returns the display name of the field.
func (f Field) Label() string {
	switch f {
	case FieldPastSimple:
		return "Past Simple"
	case FieldPastParticiple:
		return "Past Participle"
	default:
		return "Infinitive"
	}
}

// Result is the outcome of one graded (or skipped) question. Item is the
// item snapshot the answer was graded against.
type Result struct {
	Item       vocab.Item       `json:"verb"`
	Answers    map[Field]string `json:"answers"`
	Correct    map[Field]bool   `json:"correct"`
	AllCorrect bool             `json:"allCorrect"`
	Skipped    bool             `json:"skipped"`
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Answers = maps.Clone(r.Answers)
	c.Correct = maps.Clone(r.Correct)
	return &c
}

// Session is one test run over a fixed list of items.
//
// Order is the display order as a permutation of item indices; CurrentIndex
// points into Order. Results is keyed by the original item index so it stays
// attached to the same item however Order is shuffled. A missing key means
// the item was never answered.
type Session struct {
	Items            []vocab.Item
	Order            []int
	CurrentIndex     int
	Results          map[int]*Result
	Shuffled         bool
	LastOrderedIndex int
}

func newSession(items []vocab.Item) *Session {
	return &Session{
		Items:   append([]vocab.Item(nil), items...),
		Order:   identity(len(items)),
		Results: make(map[int]*Result),
	}
}

func identity(n int) []int {
	return lo.Range(n)
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.Items) }

// Empty reports whether the session has no questions.
func (s *Session) Empty() bool { return len(s.Items) == 0 }

// OriginalIndex returns the item index shown at the current position.
func (s *Session) OriginalIndex() (int, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Order) {
		return 0, false
	}
	idx := s.Order[s.CurrentIndex]
	if idx < 0 || idx >= len(s.Items) {
		return 0, false
	}
	return idx, true
}

// Current returns the item shown at the current position.
func (s *Session) Current() (vocab.Item, bool) {
	idx, ok := s.OriginalIndex()
	if !ok {
		return vocab.Item{}, false
	}
	return s.Items[idx], true
}

// CurrentResult returns the result recorded for the current item, if any.
func (s *Session) CurrentResult() *Result {
	idx, ok := s.OriginalIndex()
	if !ok {
		return nil
	}
	return s.Results[idx]
}

// Answered counts graded, non-skipped results.
func (s *Session) Answered() int {
	return lo.CountBy(lo.Values(s.Results), func(r *Result) bool {
		return r != nil && !r.Skipped
	})
}

// CorrectCount counts fully correct results.
func (s *Session) CorrectCount() int {
	return lo.CountBy(lo.Values(s.Results), func(r *Result) bool {
		return r != nil && !r.Skipped && r.AllCorrect
	})
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Items = append([]vocab.Item(nil), s.Items...)
	c.Order = append([]int(nil), s.Order...)
	c.Results = make(map[int]*Result, len(s.Results))
	for k, r := range s.Results {
		c.Results[k] = r.clone()
	}
	return &c
}
