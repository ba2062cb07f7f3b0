package mastery

// Label returns the human-readable name of a status.
func (s Status) Label() string {
	switch s {
	case StatusHard:
		return "Hard"
	case StatusProgress:
		return "In progress"
	case StatusLearned:
		return "Learned"
	default:
		return "Not started"
	}
}

// Icon returns a one-rune marker for compact list rendering.
func (s Status) Icon() string {
	switch s {
	case StatusHard:
		return "✗"
	case StatusProgress:
		return "◐"
	case StatusLearned:
		return "✓"
	default:
		return "·"
	}
}
