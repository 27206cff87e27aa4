package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-exercise progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("exercise")

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		exercises := ws.coll.Exercises
		if name != "" {
			ex, err := ws.coll.FindExercise(name)
			if err != nil {
				return errors.WithStack(err)
			}
			exercises = []*exercise.Exercise{ex}
		}
		renderStats(cmd.OutOrStdout(), exercises, time.Now())
		return nil
	},
}

func renderStats(w io.Writer, exercises []*exercise.Exercise, now time.Time) {
	if len(exercises) == 0 {
		fmt.Fprintln(w, "No exercises yet.")
		return
	}

	headers := []string{"Exercise", "Items"}
	for _, t := range mastery.AllTiers {
		headers = append(headers, t.DisplayName())
	}
	headers = append(headers, "Due", "Correct", "Next due")

	var rows [][]string
	for _, ex := range exercises {
		st := progress.Aggregate(ex, now)
		row := []string{ex.Name, strconv.Itoa(st.Total)}
		for _, t := range mastery.AllTiers {
			row = append(row, strconv.Itoa(st.PerTier[t]))
		}
		row = append(row, strconv.Itoa(st.DueCount), correctCell(st), nextDueCell(st))
		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	tierCol := make(map[int]mastery.Tier, len(mastery.AllTiers))
	for i, t := range mastery.AllTiers {
		tierCol[2+i] = t
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if tier, ok := tierCol[col]; ok {
				return cell.Foreground(theme.TierColor(tier)).Align(lipgloss.Right)
			}
			if col > 0 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	fmt.Fprintln(w, t.String())
}

func correctCell(st progress.Stats) string {
	if st.TotalAnswered == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%% of %d", st.CorrectRate, st.TotalAnswered)
}

func nextDueCell(st progress.Stats) string {
	switch {
	case st.DueCount > 0:
		return "now"
	case st.NextDueDays < 0:
		return "-"
	case st.NextDueDays == 1:
		return "1 day"
	}
	return fmt.Sprintf("%d days", st.NextDueDays)
}

func init() {
	statsCmd.Flags().StringP("exercise", "e", "", "Only this exercise")
}
