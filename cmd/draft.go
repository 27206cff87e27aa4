package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/authoring"
	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/llm"
	"github.com/abhisek/drill/internal/store"
)

// errNoProvider is returned by LLM commands when nothing is configured.
var errNoProvider = errors.New("no LLM provider configured: set DRILL_LLM_PROVIDER with its API key, " +
	"or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new items with an LLM",
	Long: `Ask the configured LLM for new practice items on a topic.

Drafts are checked like imported items and against prompts already in the
exercise. With --dry-run the accepted drafts are printed in the import
format instead of being saved, so they can be edited and imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		kind, _ := cmd.Flags().GetString("kind")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		in := authoring.DraftInput{Topic: topic, Count: count}
		if kind != "" {
			k, err := exercise.ParseKind(kind)
			if err != nil {
				return err
			}
			in.Kind = k
		}

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		ex, err := ws.exerciseFlag(cmd)
		if err != nil {
			return err
		}
		provider, err := newProvider(cmd.Context(), ws.store.EventRepo())
		if err != nil {
			return err
		}

		added, err := draftItems(cmd.Context(), cmd.OutOrStdout(), authoring.NewDrafter(provider, authoring.DefaultConfig()), ex, in, dryRun)
		if err != nil || added == 0 {
			return err
		}
		return ws.save(cmd.Context())
	},
}

func newProvider(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	if !cfg.LLM.Configured() {
		return nil, errNoProvider
	}
	p, err := llm.NewProvider(ctx, cfg.LLM, events)
	if err != nil {
		return nil, errors.Wrap(err, "LLM provider")
	}
	return p, nil
}

// draftItems drafts into ex and returns how many items were added. A dry
// run writes the drafts to w in import format and adds nothing.
func draftItems(ctx context.Context, w io.Writer, d *authoring.Drafter, ex *exercise.Exercise, in authoring.DraftInput, dryRun bool) (int, error) {
	in.Exercise = ex.Name
	if in.Topic == "" {
		in.Topic = ex.Name
	}
	for _, it := range ex.Items {
		in.Existing = append(in.Existing, it.Prompt)
	}

	res, err := d.Draft(ctx, in)
	if err != nil {
		return 0, err
	}
	for _, is := range res.Issues {
		fmt.Fprintf(w, "# skipped draft %d: %s\n", is.Line, is.Reason)
	}

	if dryRun {
		return 0, authoring.FormatBulk(w, res.Items)
	}

	added := 0
	for _, it := range res.Items {
		if err := ex.AddItem(it); err != nil {
			fmt.Fprintf(w, "# skipped %q: %v\n", oneLine(it.Prompt, 40), err)
			continue
		}
		added++
	}
	fmt.Fprintf(w, "Added %s to %q (%d tokens)\n", plural(added, "item"), ex.Name, res.Usage.TotalTokens)
	return added, nil
}

func init() {
	draftCmd.Flags().StringP("exercise", "e", "", "Exercise name or ID")
	draftCmd.Flags().StringP("topic", "t", "", "What the items should practice (default: exercise name)")
	draftCmd.Flags().IntP("count", "n", 10, "Number of items to draft")
	draftCmd.Flags().StringP("kind", "k", "", "Restrict drafts to one item kind")
	draftCmd.Flags().Bool("dry-run", false, "Print drafts in import format instead of saving")
}
