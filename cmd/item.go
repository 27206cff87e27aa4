package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/spacedrep"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage the items of an exercise",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one item",
	Example: `  drill item add -e Spanish --prompt "rojo" --answer red
  drill item add -e Spanish --kind multiple-choice --prompt "Which is a fruit?" \
      --option apple --option carrot --answer apple
  drill item add -e Spanish --kind cloze --prompt "Yo {{soy}} de {{Madrid}}" \
      --answer soy --answer Madrid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := itemFlags(cmd)
		if err != nil {
			return err
		}
		return withSave(cmd, func(ws *workspace) error {
			ex, err := ws.exerciseFlag(cmd)
			if err != nil {
				return err
			}
			it := in.build(time.Now())
			if err := ex.AddItem(it); err != nil {
				return errors.Wrap(err, "add item")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s item %s to %q\n", it.Kind, shortID(it.ID), ex.Name)
			return nil
		})
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items with their tier and review status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		ex, err := ws.exerciseFlag(cmd)
		if err != nil {
			return err
		}
		listItems(cmd.OutOrStdout(), ex, time.Now())
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item by ID or ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSave(cmd, func(ws *workspace) error {
			ex, err := ws.exerciseFlag(cmd)
			if err != nil {
				return err
			}
			it, err := ex.FindItem(args[0])
			if err != nil {
				return err
			}
			if err := ex.DeleteItem(it.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(it.ID))
			return nil
		})
	},
}

// itemInput holds the item add flags.
type itemInput struct {
	kind         exercise.Kind
	prompt       string
	instructions string
	passage      string
	answers      []string
	options      []string
	sample       string
}

func itemFlags(cmd *cobra.Command) (itemInput, error) {
	f := cmd.Flags()
	kind, _ := f.GetString("kind")
	k, err := exercise.ParseKind(kind)
	if err != nil {
		return itemInput{}, err
	}
	in := itemInput{kind: k}
	in.prompt, _ = f.GetString("prompt")
	in.instructions, _ = f.GetString("instructions")
	in.passage, _ = f.GetString("passage")
	in.answers, _ = f.GetStringArray("answer")
	in.options, _ = f.GetStringArray("option")
	in.sample, _ = f.GetString("sample")
	return in, nil
}

// build maps the flags onto an item. A single --answer fills Answer for
// single-answer kinds; array kinds always use Answers.
func (in itemInput) build(now time.Time) *exercise.Item {
	it := exercise.NewItem(in.kind, strings.TrimSpace(in.prompt), now)
	it.Instructions = in.instructions
	it.Passage = in.passage
	it.Options = in.options
	it.Sample = in.sample

	switch in.kind {
	case exercise.KindFillBlank, exercise.KindCloze, exercise.KindOrdering, exercise.KindMatching:
		it.Answers = in.answers
	default:
		if len(in.answers) == 1 {
			it.Answer = in.answers[0]
		} else {
			it.Answers = in.answers
		}
	}
	return it
}

func listItems(w io.Writer, ex *exercise.Exercise, now time.Time) {
	if len(ex.Items) == 0 {
		fmt.Fprintf(w, "%q has no items.\n", ex.Name)
		return
	}
	for _, it := range ex.Items {
		tier := mastery.Classify(it.TimesAnswered, it.TimesCorrect)
		status := string(spacedrep.Status(it, now))
		if status == string(spacedrep.ReviewScheduled) {
			status = fmt.Sprintf("in %dd", spacedrep.DaysUntilDue(it, now))
		}
		fmt.Fprintf(w, "%-8s  %-15s  %-8s  %-9s  %3d/%-3d  %s\n",
			shortID(it.ID), it.Kind, tier.DisplayName(), status,
			it.TimesCorrect, it.TimesAnswered, oneLine(it.Prompt, 50))
	}
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func init() {
	for _, c := range []*cobra.Command{itemAddCmd, itemListCmd, itemDeleteCmd} {
		c.Flags().StringP("exercise", "e", "", "Exercise name or ID")
	}

	itemAddCmd.Flags().StringP("kind", "k", string(exercise.KindBasic), "Item kind")
	itemAddCmd.Flags().StringP("prompt", "p", "", "Question text (required)")
	itemAddCmd.Flags().String("instructions", "", "Instructions shown above the prompt")
	itemAddCmd.Flags().String("passage", "", "Reading passage shown with the prompt")
	itemAddCmd.Flags().StringArrayP("answer", "a", nil, "Answer; repeat for multi-part items")
	itemAddCmd.Flags().StringArrayP("option", "o", nil, "Choice or left-column entry; repeatable")
	itemAddCmd.Flags().String("sample", "", "Model answer for free-form kinds")
	_ = itemAddCmd.MarkFlagRequired("prompt")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemDeleteCmd)
}
