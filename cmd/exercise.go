package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/markdown"
	"github.com/abhisek/drill/internal/progress"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()
		listExercises(cmd.OutOrStdout(), ws.coll, time.Now())
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		return withSave(cmd, func(ws *workspace) error {
			ex, err := ws.coll.AddExercise(args[0], desc, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", ex.Name, ex.ID)
			return nil
		})
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <name|id> <new-name>",
	Short: "Rename an exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSave(cmd, func(ws *workspace) error {
			if err := ws.coll.RenameExercise(args[0], args[1]); err != nil {
				return errors.Wrapf(err, "rename %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %q\n", args[1])
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete an exercise and all its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return withSave(cmd, func(ws *workspace) error {
			ex, err := ws.coll.FindExercise(args[0])
			if err != nil {
				return errors.WithStack(err)
			}
			q := fmt.Sprintf("Delete %q and its %s?", ex.Name, plural(len(ex.Items), "item"))
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), q) {
				return errAborted
			}
			if err := ws.coll.DeleteExercise(ex.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", ex.Name)
			return nil
		})
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show an exercise with its description and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		ex, err := ws.coll.FindExercise(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		showExercise(cmd.OutOrStdout(), ex, time.Now())
		return nil
	},
}

// errAborted is returned when a confirmation prompt is declined.
var errAborted = errors.New("aborted")

// withSave runs fn on an open workspace and saves the collection if fn
// succeeds.
func withSave(cmd *cobra.Command, fn func(ws *workspace) error) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := fn(ws); err != nil {
		return err
	}
	return ws.save(cmd.Context())
}

func listExercises(w io.Writer, c *exercise.Collection, now time.Time) {
	if len(c.Exercises) == 0 {
		fmt.Fprintln(w, "No exercises yet. Create one with: drill exercise add <name>")
		return
	}
	for _, ex := range c.Exercises {
		st := progress.Aggregate(ex, now)
		fmt.Fprintf(w, "%-30s  %-8s  %5d items  %4d due\n",
			ex.Name, shortID(ex.ID), st.Total, st.DueCount)
	}
}

func showExercise(w io.Writer, ex *exercise.Exercise, now time.Time) {
	st := progress.Aggregate(ex, now)
	fmt.Fprintf(w, "%s (%s)\n", ex.Name, ex.ID)
	fmt.Fprintf(w, "Created %s\n", ex.CreatedAt.Local().Format("2006-01-02"))
	if ex.Description != "" {
		fmt.Fprintf(w, "\n%s\n", markdown.PlainText(ex.Description))
	}
	fmt.Fprintf(w, "\n%s, %d due, %d%% correct over %s\n",
		plural(st.Total, "item"), st.DueCount, st.CorrectRate, plural(st.TotalAnswered, "answer"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	exerciseAddCmd.Flags().StringP("description", "d", "", "Description (Markdown)")
	exerciseDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
}
