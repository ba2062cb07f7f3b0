package livecheck

// FocusTracker decides when focus should jump to the next input. Each field
// moves focus forward at most once per question.
type FocusTracker[F comparable] struct {
	moved map[F]bool
}

// NewFocusTracker returns an empty tracker.
func NewFocusTracker[F comparable]() *FocusTracker[F] {
	return &FocusTracker[F]{moved: make(map[F]bool)}
}

// Next returns the field after field in flow when autoAdvance is on, field is
// exactly correct, is not the last in flow and has not moved focus before on
// this question.
func (t *FocusTracker[F]) Next(field F, flow []F, exact, autoAdvance bool) (F, bool) {
	var zero F
	if !autoAdvance || !exact || t.moved[field] {
		return zero, false
	}
	idx := -1
	for i, f := range flow {
		if f == field {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(flow)-1 {
		return zero, false
	}
	t.moved[field] = true
	return flow[idx+1], true
}

// Reset forgets every move. Call it when the question changes or an answer
// is checked.
func (t *FocusTracker[F]) Reset() {
	clear(t.moved)
}

// ShouldAutoSubmit reports whether an answer can be submitted without an
// explicit action: autoCheck is on and every required field is exactly
// correct.
func ShouldAutoSubmit(autoCheck bool, exact ...bool) bool {
	if !autoCheck || len(exact) == 0 {
		return false
	}
	for _, ok := range exact {
		if !ok {
			return false
		}
	}
	return true
}
