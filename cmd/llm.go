package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().ListLLMRequests(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Purpose: purpose,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMRequest(cmd.Context(), id)
		if err != nil {
			return err
		}
		if ev == nil {
			return fmt.Errorf("LLM request %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", ev.ID)
		fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
		fmt.Fprintf(out, "Model:     %s\n", ev.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"REQUEST", ev.RequestBody},
			{"RESPONSE", ev.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, part.title)
			fmt.Fprintln(out, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
				continue
			}
			fmt.Fprintln(out, part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		usage, err := e.store.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		printUsageByPurpose(cmd, usage)
		printCostByModel(cmd, usage)
		return nil
	},
}

func printUsageByPurpose(cmd *cobra.Command, usage []store.LLMUsage) {
	type row struct {
		calls, failures, in, out int
		latency                  int64
	}
	byPurpose := map[string]*row{}
	var purposes []string
	for _, u := range usage {
		r, ok := byPurpose[u.Purpose]
		if !ok {
			r = &row{}
			byPurpose[u.Purpose] = r
			purposes = append(purposes, u.Purpose)
		}
		r.calls += u.Calls
		r.failures += u.Failures
		r.in += u.InputTokens
		r.out += u.OutputTokens
		r.latency += u.LatencyMs
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Usage by Purpose")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	fmt.Fprintf(out, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(out, strings.Repeat("─", 80))

	var total row
	for _, p := range purposes {
		r := byPurpose[p]
		fmt.Fprintf(out, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			p, r.calls, r.failures, r.in, r.out, r.in+r.out, r.latency/int64(r.calls))
		total.calls += r.calls
		total.failures += r.failures
		total.in += r.in
		total.out += r.out
	}

	fmt.Fprintln(out, strings.Repeat("─", 80))
	fmt.Fprintf(out, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
		"TOTAL", total.calls, total.failures, total.in, total.out, total.in+total.out)
}

func printCostByModel(cmd *cobra.Command, usage []store.LLMUsage) {
	type row struct{ calls, in, out int }
	byModel := map[string]*row{}
	for _, u := range usage {
		r, ok := byModel[u.Model]
		if !ok {
			r = &row{}
			byModel[u.Model] = r
		}
		r.calls += u.Calls
		r.in += u.InputTokens
		r.out += u.OutputTokens
	}
	models := make([]string, 0, len(byModel))
	for m := range byModel {
		models = append(models, m)
	}
	sort.Strings(models)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	var totalCost float64
	var unknownModels []string
	for _, m := range models {
		r := byModel[m]
		cost := llm.LookupCost(m)
		if cost == nil {
			unknownModels = append(unknownModels, m)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(m, 32), r.calls, r.in, r.out, "?")
			continue
		}
		c := cost.Cost(r.in, r.out)
		totalCost += c
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(m, 32), r.calls, r.in, r.out, formatCost(c))
	}

	fmt.Fprintln(out, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (story-problem or hint)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
