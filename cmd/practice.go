package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/practice"
	practicescreen "github.com/abhisek/drill/internal/screens/practice"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	Long: `Start a practice session over one exercise.

By default the session runs in the full-screen interface. With --plain it
reads answers line by line from stdin instead, which also works in pipes.
Separate multiple answers with "|" and type :q to stop early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		size, _ := cmd.Flags().GetInt("size")
		seed, _ := cmd.Flags().GetUint64("seed")

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		ex, err := ws.exerciseFlag(cmd)
		if err != nil {
			return err
		}
		env := ws.env(seededRand(seed), size)

		if !plain {
			return app.Run(env, practicescreen.New(env, ex))
		}
		_, err = practice.RunPlain(cmd.Context(), ex, env.Recorder, cmd.InOrStdin(), cmd.OutOrStdout(), practice.PlainOptions{
			Size: env.SessionSize,
			Rand: env.Rand,
		})
		return err
	},
}

func init() {
	practiceCmd.Flags().StringP("exercise", "e", "", "Exercise name or ID")
	practiceCmd.Flags().IntP("size", "n", 0, "Items per session (default from config)")
	practiceCmd.Flags().Bool("plain", false, "Line-based session on stdin/stdout")
	practiceCmd.Flags().Uint64("seed", 0, "Seed for a reproducible item order")
}
