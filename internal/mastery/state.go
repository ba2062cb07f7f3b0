package mastery

// Status classifies an item by its current answer streaks.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusHard       Status = "hard"
	StatusProgress   Status = "progress"
	StatusLearned    Status = "learned"
)

// LearnedStreak is the number of consecutive correct answers after which an
// item counts as learned.
const LearnedStreak = 2

// Record holds the answer streaks for one item. After any graded answer
// exactly one of the two streaks is nonzero.
type Record struct {
	CorrectStreak int `json:"correctStreak"`
	ErrorStreak   int `json:"errorStreak"`
}

// Apply folds one graded answer into the record.
func (r *Record) Apply(correct bool) {
	if correct {
		r.CorrectStreak++
		r.ErrorStreak = 0
		return
	}
	r.ErrorStreak++
	r.CorrectStreak = 0
}

// Classify maps a record to its status. A nil record is not started.
func Classify(r *Record) Status {
	switch {
	case r == nil:
		return StatusNotStarted
	case r.ErrorStreak > 0:
		return StatusHard
	case r.CorrectStreak >= LearnedStreak:
		return StatusLearned
	case r.CorrectStreak == 1:
		return StatusProgress
	default:
		return StatusNotStarted
	}
}
