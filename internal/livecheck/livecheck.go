// Package livecheck classifies partially typed answers without revealing the
// expected text, and decides when the test screen should move focus or
// submit on its own.
package livecheck

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/verbiz/internal/textnorm"
)

// State is the live classification of an answer being typed.
type State string

const (
	StateNone     State = ""
	StateOK       State = "ok"
	StateProgress State = "progress"
	StateAlmost   State = "almost"
	StateMismatch State = "mismatch"
)

// Feedback messages. None of them contains the expected answer.
const (
	MsgMissingSeparator = "Maybe a space or hyphen is missing"
	MsgExtraLetters     = "Looks like there are extra letters at the end"
	MsgOneLetterOff     = "Almost! One letter is off"
	MsgTwoLettersOff    = "Almost! Two letters are off"
	MsgMismatch         = "Check the spelling"
)

const (
	minClassifyLen  = 2
	extraLettersMin = 3
	typoMinLen      = 4
	typoMaxLen      = 24
	typoLenSlack    = 3
	typoMaxDistance = 2
)

// Feedback is the result of Classify. Distance is set for edit-distance
// near misses.
type Feedback struct {
	State    State
	Message  string
	Distance int
}

// Classify grades answer against the "/"-separated variants of expectedRaw.
// Rules are applied in order and the first match wins.
func Classify(answer, expectedRaw string) Feedback {
	norm := textnorm.Normalize(answer)
	variants := textnorm.SplitVariants(expectedRaw)
	n := utf8.RuneCountInString(norm)

	if n < minClassifyLen || len(variants) == 0 {
		return Feedback{}
	}

	for _, v := range variants {
		if v == norm {
			return Feedback{State: StateOK}
		}
	}

	for _, v := range variants {
		if strings.HasPrefix(v, norm) {
			return Feedback{State: StateProgress}
		}
	}

	compact := textnorm.NormalizeCompact(norm)
	if compact != "" {
		for _, v := range variants {
			if strings.HasPrefix(textnorm.NormalizeCompact(v), compact) {
				return Feedback{State: StateAlmost, Message: MsgMissingSeparator}
			}
		}
	}

	// A variant followed by trailing characters. Long overshoots are
	// reported as extra letters; short ones are plain edit distance.
	overshoot := 0
	for _, v := range variants {
		if strings.HasPrefix(norm, v) {
			d := n - utf8.RuneCountInString(v)
			if d >= extraLettersMin {
				return Feedback{State: StateAlmost, Message: MsgExtraLetters}
			}
			if overshoot == 0 || d < overshoot {
				overshoot = d
			}
		}
	}
	if overshoot > 0 {
		return nearMiss(overshoot)
	}

	if n >= typoMinLen && n <= typoMaxLen {
		best := -1
		for _, v := range variants {
			if abs(utf8.RuneCountInString(v)-n) > typoLenSlack {
				continue
			}
			d := Levenshtein(norm, v)
			if best < 0 || d < best {
				best = d
			}
			if best <= 1 {
				break
			}
		}
		if best >= 1 && best <= typoMaxDistance {
			return nearMiss(best)
		}
	}

	return Feedback{State: StateMismatch, Message: MsgMismatch}
}

func nearMiss(distance int) Feedback {
	msg := MsgOneLetterOff
	if distance == 2 {
		msg = MsgTwoLettersOff
	}
	return Feedback{State: StateAlmost, Message: msg, Distance: distance}
}

// Levenshtein returns the edit distance between a and b counted in runes,
// with unit cost for insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	s, t := []rune(a), []rune(b)
	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}

	row := make([]int, len(t)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(s); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(t); j++ {
			tmp := row[j]
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return row[len(t)]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ExactlyCorrect reports whether answer matches a variant of expectedRaw.
// An empty expected value has nothing to check and counts as correct; an
// empty answer never does.
func ExactlyCorrect(answer, expectedRaw string) bool {
	if expectedRaw == "" {
		return true
	}
	if textnorm.Normalize(answer) == "" {
		return false
	}
	return textnorm.CheckVariants(answer, expectedRaw)
}
