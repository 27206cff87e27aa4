package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()
		return printHistory(cmd.Context(), cmd.OutOrStdout(), ws.store.EventRepo(), limit)
	},
}

func printHistory(ctx context.Context, w io.Writer, repo store.EventRepo, limit int) error {
	sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return errors.Wrap(err, "query sessions")
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions yet.")
		return nil
	}
	for _, s := range sessions {
		acc := 0
		if s.QuestionsServed > 0 {
			acc = s.CorrectAnswers * 100 / s.QuestionsServed
		}
		fmt.Fprintf(w, "%s  %-24s  %3d/%-3d  %3d%%  %d:%02d\n",
			s.Timestamp.Local().Format("2006-01-02 15:04"), oneLine(s.ExerciseName, 24),
			s.CorrectAnswers, s.QuestionsServed, acc, s.DurationSecs/60, s.DurationSecs%60)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
