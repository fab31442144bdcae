package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/saulo-duarte/quizzer/internal/engine"
)

func renderQuestion(w io.Writer, s engine.Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nQuestion %d of %d  (score %d)\n", s.Current+1, s.Total, s.Score)
	if s.TimeLeft != nil {
		fmt.Fprintf(&b, "Time left: %ds\n", *s.TimeLeft)
	}
	fmt.Fprintf(&b, "%s\n", s.Question.Text)
	for i, opt := range s.Question.Options {
		marker := " "
		if s.Answers[s.Current] == i {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s%d) %s\n", marker, i+1, opt)
	}
	b.WriteString(progressLine(s))
	io.WriteString(w, b.String())
}

// progressLine shows one cell per question: + answered, - skipped, . untouched.
func progressLine(s engine.Snapshot) string {
	cells := make([]string, s.Total)
	for i := range cells {
		switch {
		case s.Attempted[i]:
			cells[i] = "+"
		case s.Skipped[i]:
			cells[i] = "-"
		default:
			cells[i] = "."
		}
		if i == s.Current {
			cells[i] = "[" + cells[i] + "]"
		}
	}
	return "Progress: " + strings.Join(cells, " ") + "\n"
}

func renderResults(w io.Writer, s engine.Snapshot) {
	r := s.Result
	if r == nil {
		return
	}
	var b strings.Builder
	b.WriteString("\n=== Results ===\n")
	if r.TimedOut {
		b.WriteString("Time is up!\n")
	}
	fmt.Fprintf(&b, "Score: %d/%d\n", r.Score, r.TotalQuestions)
	fmt.Fprintf(&b, "Attempted: %d  Skipped: %d  Time: %ds\n", r.AttemptedQuestions, r.SkippedQuestions, r.TimeTaken)
	if r.SubmitErr != nil {
		fmt.Fprintf(&b, "Warning: your score may not have been saved (%v)\n", r.SubmitErr)
	}
	b.WriteString("r to play again, q to quit\n")
	io.WriteString(w, b.String())
}
