package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/config"
	"github.com/abhisek/drill/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Adaptive practice-question trainer",
	Long: `drill schedules practice questions by how well you know them.

Items you miss come back sooner, items you know well are spaced out, and
each session mixes weak, learning, new and mastered items.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()
		return app.Run(ws.env(nil, 0), nil)
	},
}

// cfg is resolved once per invocation by loadConfig.
var cfg *config.Config

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRILL_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/drill/config.yaml)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logging.Setup(c.LogLevel, os.Stderr); err != nil {
		return err
	}
	cfg = c
	return nil
}
