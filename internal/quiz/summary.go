package quiz

import (
	"math"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/vocab"
)

// Summary describes a finished test.
type Summary struct {
	// SessionID identifies the finished session in logs and on screen.
	SessionID string

	Dataset   string
	Category  mastery.Category
	IsReverse bool

	Total      int
	Answered   int
	Correct    int
	Percentage int
	XPAwarded  int

	// Missed lists the wrongly answered items in display order.
	Missed []vocab.Item
}

// Unanswered counts questions that were skipped or never reached.
func (s Summary) Unanswered() int {
	return s.Total - s.Answered
}

// buildSummary scores sess. The percentage is taken over every question,
// answered or not.
func buildSummary(sess *Session) Summary {
	total := sess.Len()
	sum := Summary{
		Total:    total,
		Answered: sess.Answered(),
		Correct:  sess.CorrectCount(),
	}
	for _, idx := range sess.Order {
		if r := sess.Results[idx]; r != nil && !r.Skipped && !r.AllCorrect {
			sum.Missed = append(sum.Missed, r.Item)
		}
	}
	if total > 0 {
		sum.Percentage = int(math.Round(float64(sum.Correct) / float64(total) * 100))
	}
	return sum
}
