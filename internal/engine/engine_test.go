package engine_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizzer/internal/engine"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingSubmitter struct {
	mu      sync.Mutex
	records []engine.Record
	err     error
}

func (s *recordingSubmitter) Submit(_ context.Context, rec engine.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return s.err
}

func (s *recordingSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func intPtr(v int) *int { return &v }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// threeQuestions has time limits [none, 5, none] and correct answers 0, 1, 2.
func threeQuestions() []engine.Question {
	opts := []string{"a", "b", "c", "d"}
	return []engine.Question{
		{ID: 1, Text: "first", Options: opts, CorrectAnswer: 0},
		{ID: 2, Text: "second", Options: opts, CorrectAnswer: 1, TimeLimit: intPtr(5)},
		{ID: 3, Text: "third", Options: opts, CorrectAnswer: 2},
	}
}

func newEngine(t *testing.T, qs []engine.Question, sub engine.Submitter, clock *fakeClock) *engine.Engine {
	t.Helper()
	e, err := engine.New(qs, sub, engine.WithClock(clock.Now), engine.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func assertBools(t *testing.T, name string, got []bool, want ...bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("EmptyIsFatal", func(t *testing.T) {
		if _, err := engine.New(nil, nil); !errors.Is(err, engine.ErrNoValidQuestions) {
			t.Errorf("New(nil) error = %v", err)
		}
	})

	t.Run("OnlyInvalidIsFatal", func(t *testing.T) {
		_, err := engine.New([]engine.Question{{ID: 1, Text: "no options"}}, nil)
		if !errors.Is(err, engine.ErrNoValidQuestions) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("DropsInvalid", func(t *testing.T) {
		qs := append([]engine.Question{{ID: 99}}, threeQuestions()...)
		e := newEngine(t, qs, nil, newFakeClock())
		s := e.Snapshot()
		if s.Total != 3 || s.Question.ID != 1 {
			t.Errorf("Total = %d first = %d", s.Total, s.Question.ID)
		}
		if s.State != engine.StateActive || s.TimeLeft != nil {
			t.Errorf("unexpected initial snapshot %+v", s)
		}
	})
}

func TestAnswerEveryQuestion(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	sub := &recordingSubmitter{}
	e := newEngine(t, threeQuestions(), sub, clock)

	if err := e.SelectAnswer(ctx, 0); err != nil {
		t.Fatalf("answer Q1: %v", err)
	}

	s := e.Snapshot()
	if s.Current != 1 || s.TimeLeft == nil || *s.TimeLeft != 5 {
		t.Fatalf("Q2 should be current with 5s left, got %+v", s)
	}
	e.Tick(ctx)
	e.Tick(ctx)
	if left := *e.Snapshot().TimeLeft; left != 3 {
		t.Errorf("timeLeft = %d, want 3", left)
	}

	if err := e.SelectAnswer(ctx, 3); err != nil {
		t.Fatalf("answer Q2: %v", err)
	}
	if s := e.Snapshot(); s.TimeLeft != nil {
		t.Errorf("Q3 is untimed, TimeLeft = %d", *s.TimeLeft)
	}
	if err := e.Tick(ctx); err != nil {
		t.Errorf("ticking an untimed question: %v", err)
	}

	clock.Advance(12*time.Second + 400*time.Millisecond)
	if err := e.SelectAnswer(ctx, 2); err != nil {
		t.Fatalf("answer Q3: %v", err)
	}

	s = e.Snapshot()
	if s.State != engine.StateResults || s.Result == nil {
		t.Fatalf("expected results, got %v", s.State)
	}
	if s.Score != 2 || s.Result.Score != 2 {
		t.Errorf("score = %d, want 2", s.Score)
	}
	assertBools(t, "attempted", s.Attempted, true, true, true)
	assertBools(t, "skipped", s.Skipped, false, false, false)

	if sub.count() != 1 {
		t.Fatalf("submissions = %d, want 1", sub.count())
	}
	want := engine.Record{Score: 2, TotalQuestions: 3, AttemptedQuestions: 3, TimeTaken: 12}
	if sub.records[0] != want {
		t.Errorf("record = %+v, want %+v", sub.records[0], want)
	}

	select {
	case <-e.Done():
	default:
		t.Errorf("Done should be closed in results")
	}
	if err := e.SelectAnswer(ctx, 0); !errors.Is(err, engine.ErrSessionFinished) {
		t.Errorf("answer after results = %v", err)
	}
}

func TestCountdownExpiry(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{}
	e := newEngine(t, threeQuestions(), sub, newFakeClock())

	e.SelectAnswer(ctx, 0)
	for i := 0; i < 4; i++ {
		if err := e.Tick(ctx); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if e.Snapshot().State != engine.StateActive {
		t.Fatalf("session ended before the countdown reached zero")
	}
	if err := e.Tick(ctx); err != nil {
		t.Fatalf("final tick: %v", err)
	}

	s := e.Snapshot()
	if s.State != engine.StateResults || !s.Result.TimedOut {
		t.Fatalf("expected timed-out results, got %+v", s)
	}
	assertBools(t, "attempted", s.Attempted, true, false, false)
	if s.Answers[1] != engine.Unanswered {
		t.Errorf("timeout must not record an answer")
	}
	if s.Result.AttemptedQuestions != 1 || s.Result.Score != 1 || s.Result.TotalQuestions != 3 {
		t.Errorf("unexpected record %+v", s.Result.Record)
	}

	for i := 0; i < 3; i++ {
		if err := e.Tick(ctx); !errors.Is(err, engine.ErrSessionFinished) {
			t.Errorf("tick after results = %v", err)
		}
	}
	if err := e.Finish(ctx); !errors.Is(err, engine.ErrSessionFinished) {
		t.Errorf("Finish after results = %v", err)
	}
	if sub.count() != 1 {
		t.Errorf("submissions = %d, want exactly 1", sub.count())
	}
}

func TestSkipEverythingThenFinish(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{}
	e := newEngine(t, threeQuestions(), sub, newFakeClock())

	for i := 0; i < 3; i++ {
		if err := e.Skip(); err != nil {
			t.Fatalf("skip %d: %v", i, err)
		}
	}
	// Skipping the last question again is idempotent and keeps the session open.
	if err := e.Skip(); err != nil {
		t.Fatalf("repeat skip: %v", err)
	}

	s := e.Snapshot()
	if s.State != engine.StateActive || s.Current != 2 {
		t.Fatalf("skip on last question must not finalize, got %v at %d", s.State, s.Current)
	}
	assertBools(t, "skipped", s.Skipped, true, true, true)
	assertBools(t, "attempted", s.Attempted, false, false, false)
	if sub.count() != 0 {
		t.Fatalf("nothing should be submitted yet")
	}

	if err := e.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	s = e.Snapshot()
	if s.State != engine.StateResults || s.Score != 0 {
		t.Fatalf("unexpected results %+v", s)
	}
	want := engine.Record{TotalQuestions: 3, SkippedQuestions: 3}
	if sub.count() != 1 || sub.records[0] != want {
		t.Errorf("records = %+v, want [%+v]", sub.records, want)
	}
}

func TestSkipThenAnswerClearsSkip(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, threeQuestions(), nil, newFakeClock())

	e.Skip()
	e.Previous()
	if err := e.SelectAnswer(ctx, 0); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	s := e.Snapshot()
	assertBools(t, "skipped", s.Skipped, false, false, false)
	assertBools(t, "attempted", s.Attempted, true, false, false)
}

func TestNavigation(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, threeQuestions(), nil, newFakeClock())

	if err := e.Previous(); err != nil || e.Snapshot().Current != 0 {
		t.Errorf("Previous at start should be a no-op")
	}
	if err := e.JumpTo(3); !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("JumpTo(3) = %v", err)
	}
	if err := e.JumpTo(-1); !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("JumpTo(-1) = %v", err)
	}

	e.JumpTo(1)
	e.Tick(ctx)
	e.Tick(ctx)
	e.Next()
	e.Previous()
	if left := *e.Snapshot().TimeLeft; left != 5 {
		t.Errorf("returning to Q2 should re-arm its timer, got %d", left)
	}

	e.JumpTo(2)
	if err := e.Next(); err != nil || e.Snapshot().Current != 2 {
		t.Errorf("Next at end should be a no-op")
	}

	e.JumpTo(0)
	if err := e.SelectAnswer(ctx, 7); !errors.Is(err, engine.ErrInvalidOption) {
		t.Errorf("SelectAnswer(7) = %v", err)
	}
	e.SelectAnswer(ctx, 1)
	e.JumpTo(0)
	if err := e.SelectAnswer(ctx, 0); !errors.Is(err, engine.ErrAlreadyAnswered) {
		t.Errorf("second answer = %v", err)
	}

	s := e.Snapshot()
	if s.Answers[0] != 1 || s.Score != 0 {
		t.Errorf("navigation must not alter answers: %+v", s)
	}
}

func TestRestartAfterCompletion(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	qs := threeQuestions()
	qs[0].TimeLimit = intPtr(10)
	sub := &recordingSubmitter{}
	e := newEngine(t, qs, sub, clock)

	e.SelectAnswer(ctx, 0)
	e.SelectAnswer(ctx, 1)
	clock.Advance(30 * time.Second)
	e.SelectAnswer(ctx, 2)
	firstDone := e.Done()

	if err := e.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	s := e.Snapshot()
	if s.State != engine.StateActive || s.Score != 0 || s.Current != 0 || s.Result != nil {
		t.Fatalf("unexpected snapshot after restart %+v", s)
	}
	assertBools(t, "attempted", s.Attempted, false, false, false)
	assertBools(t, "skipped", s.Skipped, false, false, false)
	for i, a := range s.Answers {
		if a != engine.Unanswered {
			t.Errorf("answer %d = %d after restart", i, a)
		}
	}
	if s.TimeLeft == nil || *s.TimeLeft != 10 {
		t.Errorf("first timer should be re-armed")
	}
	if s.Question.ID != 1 || s.Total != 3 {
		t.Errorf("question set changed")
	}
	if e.Done() == firstDone {
		t.Errorf("restart must hand out a fresh Done channel")
	}

	clock.Advance(4 * time.Second)
	e.Finish(ctx)
	if got := sub.records[len(sub.records)-1].TimeTaken; got != 4 {
		t.Errorf("TimeTaken after restart = %d, want 4", got)
	}
}

func TestSubmissionFailureStillReachesResults(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{err: errors.New("server unreachable")}
	e := newEngine(t, threeQuestions(), sub, newFakeClock())

	if err := e.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	s := e.Snapshot()
	if s.State != engine.StateResults {
		t.Fatalf("state = %v", s.State)
	}
	if s.Result.SubmitErr == nil || s.Result.SubmitErr.Error() != "server unreachable" {
		t.Errorf("SubmitErr = %v", s.Result.SubmitErr)
	}
}

func TestFinalizingBlocksRestart(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	sub := engine.SubmitterFunc(func(context.Context, engine.Record) error {
		close(entered)
		<-release
		return nil
	})
	e := newEngine(t, threeQuestions(), sub, newFakeClock())

	go e.Finish(context.Background())
	<-entered

	if s := e.Snapshot(); s.State != engine.StateFinalizing {
		t.Errorf("state during submission = %v", s.State)
	}
	if err := e.Restart(); !errors.Is(err, engine.ErrFinalizing) {
		t.Errorf("Restart while finalizing = %v", err)
	}
	if err := e.Skip(); !errors.Is(err, engine.ErrSessionFinished) {
		t.Errorf("Skip while finalizing = %v", err)
	}

	close(release)
	<-e.Done()
	if s := e.Snapshot(); s.State != engine.StateResults {
		t.Errorf("state after submission = %v", s.State)
	}
}

func TestAnswerRacesTimeout(t *testing.T) {
	opts := []string{"a", "b", "c", "d"}
	for i := 0; i < 100; i++ {
		sub := &recordingSubmitter{}
		e := newEngine(t, []engine.Question{{ID: 1, Options: opts, TimeLimit: intPtr(1)}}, sub, newFakeClock())

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); errs[0] = e.SelectAnswer(context.Background(), 0) }()
		go func() { defer wg.Done(); errs[1] = e.Tick(context.Background()) }()
		wg.Wait()

		if sub.count() != 1 {
			t.Fatalf("iteration %d: submissions = %d, want 1", i, sub.count())
		}
		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else if !errors.Is(err, engine.ErrSessionFinished) {
				t.Fatalf("iteration %d: unexpected error %v", i, err)
			}
		}
		if winners != 1 {
			t.Fatalf("iteration %d: %d events finalized, want 1", i, winners)
		}
		if e.Snapshot().State != engine.StateResults {
			t.Fatalf("iteration %d: not in results", i)
		}
	}
}

func TestRun(t *testing.T) {
	t.Run("CountdownFinalizes", func(t *testing.T) {
		opts := []string{"a", "b", "c", "d"}
		sub := &recordingSubmitter{}
		e, err := engine.New(
			[]engine.Question{{ID: 1, Options: opts, TimeLimit: intPtr(3)}},
			sub,
			engine.WithTickInterval(time.Millisecond),
			engine.WithLogger(quietLogger()),
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Run(ctx); err != nil {
			t.Fatalf("Run: %v", err)
		}
		s := e.Snapshot()
		if s.State != engine.StateResults || !s.Result.TimedOut || sub.count() != 1 {
			t.Errorf("unexpected end state %+v", s)
		}
	})

	t.Run("StopsOnCancel", func(t *testing.T) {
		e := newEngine(t, threeQuestions(), nil, newFakeClock())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v", err)
		}
	})

	t.Run("ReturnsWhenAnswered", func(t *testing.T) {
		e := newEngine(t, threeQuestions(), nil, newFakeClock())
		errc := make(chan error, 1)
		go func() { errc <- e.Run(context.Background()) }()

		e.Finish(context.Background())
		select {
		case err := <-errc:
			if err != nil {
				t.Errorf("Run = %v", err)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("Run did not return after results")
		}
	})
}

func TestRestartMidPassReleasesDone(t *testing.T) {
	e := newEngine(t, threeQuestions(), nil, newFakeClock())
	e.SelectAnswer(context.Background(), 0)

	first := e.Done()
	if err := e.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	select {
	case <-first:
	default:
		t.Fatalf("restart must close the abandoned pass's Done channel")
	}
	select {
	case <-e.Done():
		t.Fatalf("the new pass must not start out done")
	default:
	}
	if s := e.Snapshot(); s.State != engine.StateActive || s.Attempted[0] {
		t.Errorf("unexpected state after restart %+v", s)
	}
}
