package quiz

// EventKind identifies an engine notification.
type EventKind int

const (
	// QuestionChanged fires whenever the question on screen changes,
	// including entering a context and regenerating a session.
	QuestionChanged EventKind = iota
	// AnswerChecked fires after an answer is graded.
	AnswerChecked
	// SessionFinished fires after a test is completed and a new one started.
	SessionFinished
)

func (k EventKind) String() string {
	switch k {
	case QuestionChanged:
		return "question-changed"
	case AnswerChecked:
		return "answer-checked"
	case SessionFinished:
		return "session-finished"
	}
	return "unknown"
}

// Event is delivered to subscribers.
type Event struct {
	Kind EventKind
	// Focus asks the front end to focus the first input.
	Focus bool
	// Result is set for AnswerChecked.
	Result *Result
	// Summary is set for SessionFinished.
	Summary *Summary
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a function that
// removes it.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.nextSubID++
	id := e.nextSubID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(ev Event) {
	subs := append([]subscriber(nil), e.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}
