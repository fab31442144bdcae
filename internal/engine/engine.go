// Package engine runs one player through one pass over a question set.
//
// A session is Active until it is finalized by answering the last question,
// by Finish, or by a countdown reaching zero. Finalization moves the session to
// Finalizing exactly once, submits the score outside the lock and then settles
// in Results. Whichever event loses the race sees ErrSessionFinished.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoValidQuestions = errors.New("no valid questions")
	ErrSessionFinished  = errors.New("quiz session already finished")
	ErrFinalizing       = errors.New("quiz session is being finalized")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrInvalidOption    = errors.New("option out of range")
	ErrOutOfRange       = errors.New("question index out of range")
)

// Unanswered marks an answer slot with no selection.
const Unanswered = -1

type State int

const (
	StateActive State = iota
	StateFinalizing
	StateResults
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFinalizing:
		return "finalizing"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

type Question struct {
	ID            uint
	Text          string
	Options       []string
	CorrectAnswer int
	// TimeLimit in seconds; nil or non-positive means untimed.
	TimeLimit *int
}

func (q Question) timed() bool {
	return q.TimeLimit != nil && *q.TimeLimit > 0
}

// Record is the score submitted when a session finalizes.
type Record struct {
	Score              int
	TotalQuestions     int
	AttemptedQuestions int
	SkippedQuestions   int
	TimeTaken          int
}

// Result is what Results shows. SubmitErr is a warning: Results is reached
// even when the record could not be stored.
type Result struct {
	Record
	TimedOut  bool
	SubmitErr error
}

type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

type SubmitterFunc func(ctx context.Context, rec Record) error

func (f SubmitterFunc) Submit(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

type Engine struct {
	mu        sync.Mutex
	questions []Question
	submitter Submitter
	now       func() time.Time
	interval  time.Duration
	log       *logrus.Entry

	state     State
	current   int
	answers   []int
	attempted []bool
	skipped   []bool
	score     int
	timeLeft  int
	startTime time.Time
	result    *Result
	done      chan struct{}
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

// WithTickInterval changes how often Run calls Tick. Countdown values are
// still whole ticks.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// New starts an Active session. Questions without options are dropped; when
// none remain it returns ErrNoValidQuestions. A nil submitter records nothing.
func New(questions []Question, submitter Submitter, opts ...Option) (*Engine, error) {
	valid := make([]Question, 0, len(questions))
	for _, q := range questions {
		if len(q.Options) == 0 {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, ErrNoValidQuestions
	}

	e := &Engine{
		questions: valid,
		submitter: submitter,
		now:       time.Now,
		interval:  time.Second,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetLocked()
	return e, nil
}

// SelectAnswer records option for the current question. On the last question
// it finalizes and blocks until the score submission returns.
func (e *Engine) SelectAnswer(ctx context.Context, option int) error {
	e.mu.Lock()
	if e.state != StateActive {
		e.mu.Unlock()
		return ErrSessionFinished
	}
	q := e.questions[e.current]
	if option < 0 || option >= len(q.Options) {
		e.mu.Unlock()
		return ErrInvalidOption
	}
	if e.answers[e.current] != Unanswered {
		e.mu.Unlock()
		return ErrAlreadyAnswered
	}

	e.answers[e.current] = option
	e.attempted[e.current] = true
	e.skipped[e.current] = false
	if option == q.CorrectAnswer {
		e.score++
	}

	if e.current == len(e.questions)-1 {
		rec := e.beginFinalizeLocked()
		e.mu.Unlock()
		e.complete(ctx, rec, false)
		return nil
	}
	e.moveLocked(e.current + 1)
	e.mu.Unlock()
	return nil
}

// Skip marks the current question skipped and advances. Skipping the last
// question leaves the session Active; Finish ends it.
func (e *Engine) Skip() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive {
		return ErrSessionFinished
	}
	e.skipped[e.current] = true
	if e.current < len(e.questions)-1 {
		e.moveLocked(e.current + 1)
	}
	return nil
}

func (e *Engine) JumpTo(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive {
		return ErrSessionFinished
	}
	if index < 0 || index >= len(e.questions) {
		return ErrOutOfRange
	}
	e.moveLocked(index)
	return nil
}

func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive {
		return ErrSessionFinished
	}
	if e.current > 0 {
		e.moveLocked(e.current - 1)
	}
	return nil
}

func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive {
		return ErrSessionFinished
	}
	if e.current < len(e.questions)-1 {
		e.moveLocked(e.current + 1)
	}
	return nil
}

// Tick advances the countdown of a timed question by one second. At zero the
// session finalizes with the counts as they stand, recording no answer for the
// current question.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateActive {
		e.mu.Unlock()
		return ErrSessionFinished
	}
	if !e.questions[e.current].timed() {
		e.mu.Unlock()
		return nil
	}

	e.timeLeft--
	if e.timeLeft > 0 {
		e.mu.Unlock()
		return nil
	}
	e.timeLeft = 0
	rec := e.beginFinalizeLocked()
	e.mu.Unlock()

	e.complete(ctx, rec, true)
	return nil
}

func (e *Engine) Finish(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateActive {
		e.mu.Unlock()
		return ErrSessionFinished
	}
	rec := e.beginFinalizeLocked()
	e.mu.Unlock()

	e.complete(ctx, rec, false)
	return nil
}

// Restart resets every answer and the score, keeps the question set and starts
// the clock again. It is refused while a submission is in flight.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateFinalizing {
		return ErrFinalizing
	}
	e.resetLocked()
	return nil
}

// Done is closed when the current pass reaches Results or is abandoned by
// Restart. Restart hands out a fresh channel for the next pass.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// Run drives Tick until the session leaves Active or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	done := e.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-ticker.C:
			if err := e.Tick(ctx); errors.Is(err, ErrSessionFinished) {
				return nil
			}
		}
	}
}

func (e *Engine) resetLocked() {
	n := len(e.questions)
	e.state = StateActive
	e.answers = make([]int, n)
	for i := range e.answers {
		e.answers[i] = Unanswered
	}
	e.attempted = make([]bool, n)
	e.skipped = make([]bool, n)
	e.score = 0
	e.result = nil
	e.startTime = e.now()
	if e.done != nil {
		select {
		case <-e.done:
		default:
			close(e.done)
		}
	}
	e.done = make(chan struct{})
	e.moveLocked(0)
}

// moveLocked enters index and re-arms its countdown.
func (e *Engine) moveLocked(index int) {
	e.current = index
	e.timeLeft = 0
	if q := e.questions[index]; q.timed() {
		e.timeLeft = *q.TimeLimit
	}
}

func (e *Engine) beginFinalizeLocked() Record {
	e.state = StateFinalizing

	rec := Record{
		Score:          e.score,
		TotalQuestions: len(e.questions),
		TimeTaken:      int(e.now().Sub(e.startTime) / time.Second),
	}
	for i := range e.questions {
		if e.attempted[i] {
			rec.AttemptedQuestions++
		}
		if e.skipped[i] {
			rec.SkippedQuestions++
		}
	}
	return rec
}

func (e *Engine) complete(ctx context.Context, rec Record, timedOut bool) {
	var err error
	if e.submitter != nil {
		err = e.submitter.Submit(ctx, rec)
	}

	log := e.log.WithFields(logrus.Fields{
		"score":     rec.Score,
		"total":     rec.TotalQuestions,
		"attempted": rec.AttemptedQuestions,
		"skipped":   rec.SkippedQuestions,
		"timeTaken": rec.TimeTaken,
		"timedOut":  timedOut,
	})
	if err != nil {
		log.WithError(err).Warn("Score submission failed, result may not be recorded")
	} else {
		log.Info("Quiz session finished")
	}

	e.mu.Lock()
	e.state = StateResults
	e.result = &Result{Record: rec, TimedOut: timedOut, SubmitErr: err}
	close(e.done)
	e.mu.Unlock()
}
