package engine

import "time"

type Snapshot struct {
	State     State
	Current   int
	Total     int
	Question  Question
	Answers   []int
	Attempted []bool
	Skipped   []bool
	Score     int
	// TimeLeft is nil when the current question is untimed.
	TimeLeft *int
	Elapsed  time.Duration
	// Result is set once State is StateResults.
	Result *Result
}

// Snapshot copies the session state for rendering.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:     e.state,
		Current:   e.current,
		Total:     len(e.questions),
		Question:  e.questions[e.current],
		Answers:   append([]int(nil), e.answers...),
		Attempted: append([]bool(nil), e.attempted...),
		Skipped:   append([]bool(nil), e.skipped...),
		Score:     e.score,
		Elapsed:   e.now().Sub(e.startTime),
	}
	if e.state == StateActive && e.questions[e.current].timed() {
		left := e.timeLeft
		s.TimeLeft = &left
	}
	if e.result != nil {
		r := *e.result
		s.Result = &r
		s.Elapsed = time.Duration(r.TimeTaken) * time.Second
	}
	return s
}
