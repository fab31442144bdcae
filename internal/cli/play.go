package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizzer/internal/client"
	"github.com/saulo-duarte/quizzer/internal/engine"
)

const playHelp = "commands: 1-4 answer, s skip, n next, p previous, g N jump, f finish, r restart, q quit"

func NewPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play through the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireSession(cmd)
			if err != nil {
				return err
			}
			questions, err := a.api.Questions(cmd.Context(), token)
			if err != nil {
				return err
			}
			eng, err := engine.New(toEngineQuestions(questions), scoreSubmitter{api: a.api, token: token}, engine.WithLogger(a.log))
			if errors.Is(err, engine.ErrNoValidQuestions) {
				return errors.New("no valid questions available")
			}
			if err != nil {
				return err
			}
			return play(cmd.Context(), eng, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// scoreSubmitter posts the finished session for the logged-in user.
type scoreSubmitter struct {
	api   *client.Client
	token string
}

func (s scoreSubmitter) Submit(ctx context.Context, rec engine.Record) error {
	return s.api.SubmitScore(ctx, s.token, client.ScoreSubmission{
		Score:              rec.Score,
		TotalQuestions:     rec.TotalQuestions,
		AttemptedQuestions: rec.AttemptedQuestions,
		SkippedQuestions:   rec.SkippedQuestions,
		TimeTaken:          rec.TimeTaken,
	})
}

func toEngineQuestions(qs []client.Question) []engine.Question {
	out := make([]engine.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, engine.Question{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			TimeLimit:     q.TimeLimit,
		})
	}
	return out
}

// play reads commands from in until quit or EOF. The countdown runs in its own
// goroutine for each pass.
func play(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	cd := startCountdown(ctx, eng)
	defer cd.stop()

	fmt.Fprintln(out, playHelp)
	done := eng.Done()
	renderQuestion(out, eng.Snapshot())

	redraw := time.NewTicker(time.Second)
	defer redraw.Stop()
	lastLeft := -1

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-done:
			done = nil
			renderResults(out, eng.Snapshot())

		case <-redraw.C:
			s := eng.Snapshot()
			if s.TimeLeft != nil && *s.TimeLeft != lastLeft {
				lastLeft = *s.TimeLeft
				fmt.Fprintf(out, "  %ds left\n", lastLeft)
			}

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, restarted, err := handleCommand(ctx, eng, cd, line)
			if quit {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "! %v\n", err)
				continue
			}
			if restarted {
				done = eng.Done()
			}
			s := eng.Snapshot()
			if s.State == engine.StateResults {
				if done != nil {
					<-done
					done = nil
					renderResults(out, s)
				}
				continue
			}
			lastLeft = -1
			renderQuestion(out, s)
		}
	}
}

func handleCommand(ctx context.Context, eng *engine.Engine, cd *countdown, line string) (quit, restarted bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, false, nil
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "q", "quit":
		return true, false, nil
	case "s", "skip":
		err = eng.Skip()
	case "n", "next":
		err = eng.Next()
	case "p", "prev", "previous":
		err = eng.Previous()
	case "f", "finish":
		err = eng.Finish(ctx)
	case "r", "restart":
		if err = cd.restart(); err == nil {
			restarted = true
		}
	case "g", "go":
		if len(fields) != 2 {
			return false, false, errors.New("usage: g <question number>")
		}
		n, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return false, false, fmt.Errorf("invalid question number %q", fields[1])
		}
		err = eng.JumpTo(n - 1)
	default:
		n, convErr := strconv.Atoi(cmd)
		if convErr != nil {
			return false, false, fmt.Errorf("unknown command %q (%s)", line, playHelp)
		}
		err = eng.SelectAnswer(ctx, n-1)
	}
	return false, restarted, err
}

// countdown owns the goroutine that drives eng.Run for the current pass.
type countdown struct {
	ctx    context.Context
	eng    *engine.Engine
	cancel context.CancelFunc
	exited chan struct{}
}

func startCountdown(ctx context.Context, eng *engine.Engine) *countdown {
	c := &countdown{ctx: ctx, eng: eng}
	c.start()
	return c
}

func (c *countdown) start() {
	runCtx, cancel := context.WithCancel(c.ctx)
	exited := make(chan struct{})
	c.cancel, c.exited = cancel, exited
	go func() {
		defer close(exited)
		c.eng.Run(runCtx)
	}()
}

// stop cancels the runner and returns once it can no longer tick.
func (c *countdown) stop() {
	c.cancel()
	<-c.exited
}

// restart resets the engine between two runners so a tick from the old pass
// never lands on the new one.
func (c *countdown) restart() error {
	c.stop()
	err := c.eng.Restart()
	c.start()
	return err
}
