package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/progress"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/textnorm"
	"github.com/abhisek/verbiz/internal/vocab"
)

// Direction is a navigation direction.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Context identifies which session slot is active.
type Context struct {
	Dataset   string
	Category  mastery.Category
	IsReverse bool
}

// Deps are the collaborators of an Engine.
type Deps struct {
	KV       store.KV
	Datasets DatasetProvider
	Settings SettingsProvider
	Mastery  MasteryTracker
	Rewards  Rewards
	Effects  Effects // optional
	Log      logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes shuffling deterministic.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.intn = r.IntN }
}

// WithClock overrides the time source for daily statistics.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithAutoAdvanceDelay sets the auto-advance pause at normal speed.
func WithAutoAdvanceDelay(d time.Duration) Option {
	return func(e *Engine) { e.autoAdvanceDelay = d }
}

// Engine runs one test session at a time. All methods must be called from a
// single goroutine.
type Engine struct {
	storage  *Storage
	datasets DatasetProvider
	settings SettingsProvider
	mastery  MasteryTracker
	rewards  Rewards
	effects  Effects
	log      logrus.FieldLogger

	intn             func(int) int
	now              func() time.Time
	autoAdvanceDelay time.Duration

	ctx       Context
	entered   bool
	session   *Session
	sessionID string
	shuffle   bool
	hintUsed  map[Field]bool

	timer    *Timer
	timerSeq uint64

	subs      []subscriber
	nextSubID int
}

// New returns an engine with no active context. Call Enter before anything
// else.
func New(deps Deps, opts ...Option) *Engine {
	log := logging.OrDiscard(deps.Log)
	e := &Engine{
		storage:          NewStorage(deps.KV, log),
		datasets:         deps.Datasets,
		settings:         deps.Settings,
		mastery:          deps.Mastery,
		rewards:          deps.Rewards,
		effects:          deps.Effects,
		log:              log,
		intn:             rand.IntN,
		now:              time.Now,
		autoAdvanceDelay: DefaultAutoAdvanceDelay,
		session:          newSession(nil),
		hintUsed:         make(map[Field]bool),
	}
	if e.effects == nil {
		e.effects = nopEffects{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) key() string {
	return StorageKey(e.ctx.Dataset, e.ctx.Category, e.ctx.IsReverse)
}

func (e *Engine) logger() logrus.FieldLogger {
	return e.log.WithFields(logrus.Fields{
		"session_id": e.sessionID,
		"dataset":    e.ctx.Dataset,
		"category":   e.ctx.Category,
		"reverse":    e.ctx.IsReverse,
	})
}

// Enter switches to the session slot for dataset, category and direction,
// restoring its saved session or starting a new one. An empty item list
// leaves the engine in the empty state.
func (e *Engine) Enter(ctx context.Context, dataset string, category mastery.Category, isReverse bool) {
	e.cancelAutoAdvance()
	e.ctx = Context{Dataset: dataset, Category: category, IsReverse: isReverse}
	e.entered = true

	items := e.datasets.VerbList(dataset, category)
	if sess, ok := e.storage.Restore(ctx, e.key(), items); ok {
		e.session = sess
		e.shuffle = sess.Shuffled
		e.sessionID = uuid.NewString()
		e.resetQuestionState()
		e.logger().WithField("position", sess.CurrentIndex).Debug("restored test session")
		e.emit(Event{Kind: QuestionChanged})
		return
	}
	e.generate(ctx, items)
}

// generate starts a fresh session over items, shuffled when shuffling is on.
func (e *Engine) generate(ctx context.Context, items []vocab.Item) {
	e.cancelAutoAdvance()

	sess := newSession(items)
	sess.Shuffled = e.shuffle
	if e.shuffle {
		ShuffleInts(sess.Order, e.intn)
	}
	e.session = sess
	e.sessionID = uuid.NewString()
	e.resetQuestionState()

	e.logger().WithField("items", sess.Len()).Debug("generated test session")
	if !sess.Empty() {
		e.save(ctx)
	}
	e.emit(Event{Kind: QuestionChanged})
}

func (e *Engine) resetQuestionState() {
	clear(e.hintUsed)
}

func (e *Engine) save(ctx context.Context) {
	key := e.key()
	if err := e.storage.Save(ctx, key, e.session); err != nil {
		e.log.WithError(err).WithField("key", key).Warn("persist test state failed")
	}
}

// Context returns the active slot.
func (e *Engine) Context() Context { return e.ctx }

// SessionID returns the id of the active session. Restoring a saved session
// assigns a new id.
func (e *Engine) SessionID() string { return e.sessionID }

// Entered reports whether Enter has been called.
func (e *Engine) Entered() bool { return e.entered }

// Session returns a copy of the active session.
func (e *Engine) Session() *Session { return e.session.Clone() }

// Empty reports whether the active session has no questions.
func (e *Engine) Empty() bool { return e.session.Empty() }

// Shuffled reports whether question order is shuffled.
func (e *Engine) Shuffled() bool { return e.shuffle }

// Position returns the current display position and the question count.
func (e *Engine) Position() (index, total int) {
	return e.session.CurrentIndex, e.session.Len()
}

// CurrentItem returns the item on screen.
func (e *Engine) CurrentItem() (vocab.Item, bool) {
	return e.session.Current()
}

// CurrentResult returns a copy of the result for the item on screen.
func (e *Engine) CurrentResult() *Result {
	return e.session.CurrentResult().clone()
}

// Answered reports whether the item on screen has a graded result.
func (e *Engine) Answered() bool {
	r := e.session.CurrentResult()
	return r != nil && !r.Skipped
}

// HintUsed reports whether a hint was taken for field on this question.
func (e *Engine) HintUsed(f Field) bool { return e.hintUsed[f] }

// Prompt returns the text the learner translates: the translation, or the
// infinitive when the direction is reversed.
func (e *Engine) Prompt() string {
	item, ok := e.CurrentItem()
	if !ok {
		return ""
	}
	if e.ctx.IsReverse {
		return item.Infinitive
	}
	return item.Translation
}

// RequiredFields lists the fields graded for the item on screen. The word
// itself is always required; past forms only when the dataset has them,
// simple mode is off and the item carries that form.
func (e *Engine) RequiredFields() []Field {
	item, ok := e.CurrentItem()
	if !ok {
		return nil
	}
	fields := []Field{FieldInfinitive}
	if !e.formsEnabled() {
		return fields
	}
	if item.PastSimple != "" {
		fields = append(fields, FieldPastSimple)
	}
	if item.PastParticiple != "" {
		fields = append(fields, FieldPastParticiple)
	}
	return fields
}

func (e *Engine) formsEnabled() bool {
	return e.datasets.HasForms(e.ctx.Dataset) && !e.settings.Settings().SimpleMode
}

func (e *Engine) required(f Field) bool {
	for _, r := range e.RequiredFields() {
		if r == f {
			return true
		}
	}
	return false
}

// Expected returns the raw expected value of field for the item on screen,
// or "" when the field is not graded.
func (e *Engine) Expected(f Field) string {
	item, ok := e.CurrentItem()
	if !ok || !e.required(f) {
		return ""
	}
	return expectedFor(item, f, e.ctx.IsReverse)
}

func expectedFor(item vocab.Item, f Field, isReverse bool) string {
	switch f {
	case FieldInfinitive:
		if isReverse {
			return item.Translation
		}
		return item.Infinitive
	case FieldPastSimple:
		return item.PastSimple
	case FieldPastParticiple:
		return item.PastParticiple
	}
	return ""
}

// SubmitAnswer grades answers for the item on screen. It does nothing and
// returns nil when there is no item or the item already has a graded
// result, so a second submit of the same question is ignored.
func (e *Engine) SubmitAnswer(ctx context.Context, answers map[Field]string) *Result {
	e.cancelAutoAdvance()

	item, ok := e.CurrentItem()
	if !ok {
		return nil
	}
	if e.Answered() {
		e.logger().WithField("item", item.Key()).Debug("ignoring repeated submit")
		return nil
	}

	required := e.RequiredFields()
	res := &Result{
		Item:       item,
		Answers:    make(map[Field]string, len(Fields)),
		Correct:    make(map[Field]bool, len(Fields)),
		AllCorrect: true,
	}
	var missed []string
	for _, f := range Fields {
		res.Answers[f] = answers[f]
		ok := true
		if e.required(f) {
			expected := expectedFor(item, f, e.ctx.IsReverse)
			ok = textnorm.CheckVariants(answers[f], expected)
			if !ok {
				missed = append(missed, expected)
			}
		}
		res.Correct[f] = ok
		res.AllCorrect = res.AllCorrect && ok
	}

	idx, _ := e.session.OriginalIndex()
	e.session.Results[idx] = res

	e.mastery.Record(ctx, item.Key(), res.AllCorrect)
	e.rewards.RecordAnswer(ctx, res.AllCorrect, e.now())
	e.reward(ctx, res.AllCorrect, missed)

	e.save(ctx)
	e.logger().WithFields(logrus.Fields{
		"item":     item.Key(),
		"correct":  res.AllCorrect,
		"required": len(required),
	}).Debug("answer checked")
	e.emit(Event{Kind: AnswerChecked, Result: res.clone()})

	if res.AllCorrect && e.settings.Settings().AutoAdvance {
		e.armAutoAdvance()
	}
	return res.clone()
}

// reward applies XP, streak and feedback effects for one graded answer.
// The streak bonus is paid when the updated streak reaches a milestone.
func (e *Engine) reward(ctx context.Context, correct bool, missed []string) {
	s := e.settings.Settings()

	if !correct {
		e.rewards.UpdateStreak(ctx, false)
		if s.Haptics {
			e.effects.Haptic(HapticError)
		}
		if s.SoundEffects {
			e.effects.Sound(SoundWrong)
		}
		e.effects.Toast(Toast{Kind: ToastError, Title: "Incorrect", Body: "Correct: " + strings.Join(missed, ", ")})
		return
	}

	if s.Haptics {
		e.effects.Haptic(HapticSuccess)
	}
	if s.SoundEffects {
		e.effects.Sound(SoundCorrect)
	}
	e.rewards.AddXP(ctx, progress.XPCorrect)
	streak := e.rewards.UpdateStreak(ctx, true)
	if progress.IsStreakMilestone(streak) {
		e.rewards.AddXP(ctx, progress.XPStreakBonus)
		e.effects.Toast(Toast{
			Kind:  ToastSuccess,
			Title: fmt.Sprintf("%d correct in a row!", streak),
			Body:  fmt.Sprintf("+%d XP bonus", progress.XPStreakBonus),
		})
		if s.Confetti {
			e.effects.Confetti()
		}
		return
	}
	e.effects.Toast(Toast{Kind: ToastSuccess, Title: "Correct!", Body: fmt.Sprintf("+%d XP", progress.XPCorrect)})
}

// Navigate moves one question forward or back. Moving back from the first
// question does nothing; moving forward from the last finishes the test.
// focus is passed on to the QuestionChanged event.
func (e *Engine) Navigate(ctx context.Context, dir Direction, focus bool) {
	e.cancelAutoAdvance()
	if e.session.Empty() {
		return
	}

	next := e.session.CurrentIndex - 1
	if dir == Next {
		next = e.session.CurrentIndex + 1
	}
	if next < 0 || next >= e.session.Len() {
		if dir == Next {
			e.Finish(ctx)
		}
		return
	}

	e.session.CurrentIndex = next
	e.resetQuestionState()
	e.save(ctx)
	e.emit(Event{Kind: QuestionChanged, Focus: focus})
}

// Skip moves to the next question without grading the current one.
func (e *Engine) Skip(ctx context.Context) {
	e.Navigate(ctx, Next, false)
}

// ToggleShuffle switches between shuffled and dataset order. Turning shuffle
// on remembers the current position and starts from the first shuffled
// question; turning it off returns to the remembered position. Results stay
// attached to their items either way.
func (e *Engine) ToggleShuffle(ctx context.Context) {
	e.cancelAutoAdvance()
	e.shuffle = !e.shuffle

	sess := e.session
	sess.Shuffled = e.shuffle
	if !sess.Empty() {
		if e.shuffle {
			sess.LastOrderedIndex = sess.CurrentIndex
			ShuffleInts(sess.Order, e.intn)
			sess.CurrentIndex = 0
		} else {
			sess.Order = identity(sess.Len())
			sess.CurrentIndex = sess.LastOrderedIndex
			if sess.CurrentIndex < 0 || sess.CurrentIndex >= sess.Len() {
				sess.CurrentIndex = 0
			}
		}
	}

	title := "Questions in order"
	if e.shuffle {
		title = "Questions shuffled"
	}
	e.effects.Toast(Toast{Kind: ToastInfo, Title: title})

	e.resetQuestionState()
	e.save(ctx)
	e.emit(Event{Kind: QuestionChanged})
}

// Finish scores the test, awards completion XP, discards the saved slot and
// starts a new session for the same context. It does nothing for an empty
// session.
func (e *Engine) Finish(ctx context.Context) Summary {
	e.cancelAutoAdvance()
	if e.session.Empty() {
		return Summary{}
	}

	sum := buildSummary(e.session)
	sum.SessionID = e.sessionID
	sum.Dataset, sum.Category, sum.IsReverse = e.ctx.Dataset, e.ctx.Category, e.ctx.IsReverse
	sum.XPAwarded = progress.CompletionXP(sum.Percentage)

	s := e.settings.Settings()
	switch {
	case sum.Percentage >= 100:
		if s.Confetti {
			e.effects.Confetti()
		}
		e.effects.Toast(Toast{Kind: ToastSuccess, Title: "Perfect score!", Body: "Every answer was correct"})
	case sum.XPAwarded > 0:
		e.effects.Toast(Toast{Kind: ToastSuccess, Title: "Excellent!", Body: fmt.Sprintf("%d%% correct", sum.Percentage)})
	default:
		e.effects.Toast(Toast{Kind: ToastInfo, Title: "Test finished", Body: fmt.Sprintf("%d of %d correct", sum.Correct, sum.Total)})
	}
	if s.SoundEffects {
		e.effects.Sound(SoundFinish)
	}
	if sum.XPAwarded > 0 {
		e.rewards.AddXP(ctx, sum.XPAwarded)
	}

	e.logger().WithFields(logrus.Fields{
		"answered":   sum.Answered,
		"correct":    sum.Correct,
		"percentage": sum.Percentage,
	}).Info("test finished")

	if err := e.storage.Clear(ctx, e.key()); err != nil {
		e.log.WithError(err).WithField("key", e.key()).Warn("clear test state failed")
	}
	e.generate(ctx, e.datasets.VerbList(e.ctx.Dataset, e.ctx.Category))
	e.emit(Event{Kind: SessionFinished, Summary: &sum})
	return sum
}

// GiveHint returns the input value for field with one more character of the
// expected answer revealed: the first len(current)+1 characters of its first
// variant. It reports false when there is no item, the item is already
// answered, or the field is not graded.
func (e *Engine) GiveHint(f Field, current string) (string, bool) {
	if _, ok := e.CurrentItem(); !ok || e.Answered() {
		return "", false
	}
	expected := e.Expected(f)
	if expected == "" {
		return "", false
	}

	first := []rune(textnorm.FirstVariant(expected))
	n := utf8.RuneCountInString(current) + 1
	if n > len(first) {
		n = len(first)
	}

	e.hintUsed[f] = true
	if e.settings.Settings().Haptics {
		e.effects.Haptic(HapticTick)
	}
	return string(first[:n]), true
}

// Reset discards every saved session of the current dataset and the mastery
// of its items, then enters the current context again.
func (e *Engine) Reset(ctx context.Context) {
	if !e.entered {
		return
	}
	e.cancelAutoAdvance()

	if err := e.storage.ClearDataset(ctx, e.ctx.Dataset); err != nil {
		e.log.WithError(err).WithField("dataset", e.ctx.Dataset).Warn("clear dataset test state failed")
	}
	e.mastery.Delete(ctx, vocab.Keys(e.datasets.AllItems(e.ctx.Dataset))...)
	e.logger().Info("dataset progress reset")

	e.Enter(ctx, e.ctx.Dataset, e.ctx.Category, e.ctx.IsReverse)
}
