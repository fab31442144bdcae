package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewScoresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show your past attempts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireSession(cmd)
			if err != nil {
				return err
			}
			scores, err := a.api.Scores(cmd.Context(), token)
			if err != nil {
				return err
			}
			if len(scores) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No attempts recorded yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tSCORE\tATTEMPTED\tSKIPPED\tTIME")
			for _, s := range scores {
				fmt.Fprintf(tw, "%s\t%d/%d\t%d\t%d\t%ds\n",
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
					s.Score, s.TotalQuestions, s.AttemptedQuestions, s.SkippedQuestions, s.TimeTaken)
			}
			return tw.Flush()
		},
	}
}
