package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizzer/internal/client"
)

func NewQuestionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Inspect or extend the question bank",
	}
	cmd.AddCommand(newQuestionsListCmd(a))
	cmd.AddCommand(newQuestionsAddCmd(a))
	return cmd
}

func newQuestionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every question",
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tQUESTION\tOPTIONS\tLIMIT")
			for _, q := range questions {
				limit := "-"
				if q.TimeLimit != nil {
					limit = fmt.Sprintf("%ds", *q.TimeLimit)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", q.ID, q.Text, strings.Join(q.Options, " | "), limit)
			}
			return tw.Flush()
		},
	}
}

func newQuestionsAddCmd(a *app) *cobra.Command {
	var (
		text      string
		options   []string
		correct   int
		timeLimit int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(options) != 4 {
				return errors.New("exactly four --option values are required")
			}
			token, err := a.requireSession(cmd)
			if err != nil {
				return err
			}

			nq := client.NewQuestion{Question: text, Options: options, CorrectAnswer: correct}
			if cmd.Flags().Changed("time-limit") {
				nq.TimeLimit = &timeLimit
			}
			id, err := a.api.CreateQuestion(cmd.Context(), token, nq)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Question added with id %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "question", "q", "", "question text")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "answer option (repeat four times)")
	cmd.Flags().IntVarP(&correct, "correct", "c", 0, "index of the correct option, 0-3")
	cmd.Flags().IntVarP(&timeLimit, "time-limit", "t", 0, "time limit in seconds")
	cmd.MarkFlagRequired("question")
	return cmd
}
