package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear answer history for an exercise or one item",
	Long: `Clear answer history so items start over as new.

This cannot be undone. Without --yes you are asked to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetString("item")
		yes, _ := cmd.Flags().GetBool("yes")

		return withSave(cmd, func(ws *workspace) error {
			ex, err := ws.exerciseFlag(cmd)
			if err != nil {
				return err
			}

			if itemID != "" {
				it, err := ex.FindItem(itemID)
				if err != nil {
					return err
				}
				q := fmt.Sprintf("Reset history of %q?", oneLine(it.Prompt, 40))
				if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), q) {
					return errAborted
				}
				progress.ResetStats(it)
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", shortID(it.ID))
				return nil
			}

			q := fmt.Sprintf("Reset history of all %s in %q?", plural(len(ex.Items), "item"), ex.Name)
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), q) {
				return errAborted
			}
			n := progress.ResetExercise(ex)
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s in %q\n", plural(n, "item"), ex.Name)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().StringP("exercise", "e", "", "Exercise name or ID")
	resetCmd.Flags().String("item", "", "Only reset this item (ID or prefix)")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
