package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"atlas/internal/usage"
)

func newUsageCmd() *cobra.Command {
	var (
		asJSON bool
		recent int
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show recorded token usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Usage.Enabled {
				return fmt.Errorf("usage tracking is disabled in config")
			}
			a, err := newApp(cfg, appOptions{withUsage: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			stats, err := a.usage.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			fmt.Fprintf(out, "%d turns, %d input / %d output tokens\n\n", stats.Turns, stats.Total.Input, stats.Total.Output)
			fmt.Fprintln(out, renderTable("By area", countHeaders("area"), countRows(stats.ByArea)))
			fmt.Fprintln(out, renderTable("By provider", countHeaders("provider"), countRows(stats.ByProvider)))
			fmt.Fprintln(out, renderTable("By model", countHeaders("model"), countRows(stats.ByModel)))

			if recent > 0 {
				events, err := a.usage.Recent(ctx, recent)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(events))
				for _, ev := range events {
					area := ev.Area
					if area == "" {
						area = usage.NoArea
					}
					rows = append(rows, []string{ev.Timestamp.Local().Format("2006-01-02 15:04:05"), area, ev.Model, itoa(ev.InputTokens), itoa(ev.OutputTokens)})
				}
				fmt.Fprintln(out, renderTable("Recent turns", []string{"time", "area", "model", "in", "out"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().IntVar(&recent, "recent", 0, "Also list the N most recent turns")
	return cmd
}

func countHeaders(first string) []string {
	return []string{first, "turns", "prompt", "input", "output"}
}

// countRows sorts by total tokens, largest first.
func countRows(m map[string]usage.TokenCounts) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]].Total != m[keys[j]].Total {
			return m[keys[i]].Total > m[keys[j]].Total
		}
		return keys[i] < keys[j]
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		c := m[k]
		rows = append(rows, []string{k, itoa(c.Turns), itoa(c.Prompt), itoa(c.Input), itoa(c.Output)})
	}
	return rows
}
