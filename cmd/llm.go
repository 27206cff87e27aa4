package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/llm"
	"github.com/abhisek/drill/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the LLM provider and inspect request events",
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a small request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		p, err := newProvider(cmd.Context(), ws.store.EventRepo())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s (%s)\n", cfg.LLM.Provider, p.ModelID())
		return healthCheck(cmd.Context(), cmd.OutOrStdout(), p)
	},
}

var healthSchema = &llm.Schema{
	Name:        "health-check",
	Description: "Connectivity check",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok": map[string]any{"type": "boolean"},
		},
		"required":             []any{"ok"},
		"additionalProperties": false,
	},
}

func healthCheck(ctx context.Context, w io.Writer, p llm.Provider) error {
	ctx = llm.WithPurpose(ctx, llm.PurposeHealthCheck)
	req := llm.Prompt("You are a connectivity check.", `Reply with {"ok": true}.`, healthSchema, 32)

	start := time.Now()
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return errors.Wrap(err, "health check")
	}
	var out struct {
		OK bool `json:"ok"`
	}
	if err := resp.Decode(&out); err != nil {
		return errors.Wrap(err, "health check")
	}
	if !out.OK {
		return errors.Errorf("health check: model answered %s", resp.Content)
	}
	fmt.Fprintf(w, "OK in %s (%d tokens, model %s)\n",
		time.Since(start).Round(time.Millisecond), resp.Usage.TotalTokens, resp.Model)
	return nil
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM request events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()
		return listLLMEvents(cmd.Context(), cmd.OutOrStdout(), ws.store.EventRepo(), limit, purpose)
	},
}

func listLLMEvents(ctx context.Context, w io.Writer, repo store.EventRepo, limit int, purpose string) error {
	events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return errors.Wrap(err, "query events")
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		ok := "✓"
		if !e.Success {
			ok = "✗ " + oneLine(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		return errors.Wrap(err, "query usage")
	}
	fmt.Fprintln(w, strings.Repeat("─", 100))
	fmt.Fprintf(w, "%d requests (%d failed), %d input / %d output tokens\n",
		usage.Requests, usage.Failures, usage.InputTokens, usage.OutputTokens)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (item-draft, health-check)")

	llmCmd.AddCommand(llmTestCmd)
	llmCmd.AddCommand(llmListCmd)
}
