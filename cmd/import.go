package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/authoring"
	"github.com/abhisek/drill/internal/exercise"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import items from a text file",
	Long: `Import items into an exercise from a text file, or stdin with "-".

Each line "prompt | answer" adds a basic item; more "|" fields add answers.
Richer kinds use blocks:

  [multiple-choice]
  prompt: Which one is a fruit?
  options: apple | carrot | leek
  answer: apple
  [end]

Malformed lines are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("exercise")
		create, _ := cmd.Flags().GetBool("create")

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open import")
			}
			defer f.Close()
			r = f
		}

		return withSave(cmd, func(ws *workspace) error {
			return importItems(cmd.OutOrStdout(), ws.coll, name, create, r, time.Now())
		})
	},
}

// importItems parses r into the named exercise, creating it when create is
// set. Issues are printed and do not fail the import.
func importItems(w io.Writer, c *exercise.Collection, name string, create bool, r io.Reader, now time.Time) error {
	ex, err := c.FindExercise(name)
	if errors.Is(err, exercise.ErrNotFound) && create {
		ex, err = c.AddExercise(name, "", now)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	items, issues, err := authoring.ParseBulk(r, now)
	if err != nil {
		return err
	}

	for _, is := range issues {
		fmt.Fprintf(w, "skipped %s\n", is)
	}
	skipped := len(issues)

	added := 0
	for _, it := range items {
		if err := ex.AddItem(it); err != nil {
			fmt.Fprintf(w, "skipped %q: %v\n", oneLine(it.Prompt, 40), err)
			skipped++
			continue
		}
		added++
	}

	fmt.Fprintf(w, "Imported %s into %q", plural(added, "item"), ex.Name)
	if skipped > 0 {
		fmt.Fprintf(w, " (%s skipped)", plural(skipped, "record"))
	}
	fmt.Fprintln(w)
	return nil
}

func init() {
	importCmd.Flags().StringP("exercise", "e", "", "Target exercise name or ID (required)")
	importCmd.Flags().Bool("create", false, "Create the exercise if it does not exist")
	_ = importCmd.MarkFlagRequired("exercise")
}
