package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show prompt sizes for the core and each area",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.engine.Stats()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			rows := [][]string{{st.Core.Name, itoa(st.Core.Chars), itoa(st.Core.Tokens), itoa(st.Core.Tokens)}}
			for _, b := range st.Areas {
				rows = append(rows, []string{b.Name, itoa(b.Chars), itoa(b.Tokens), itoa(b.Tokens + st.Core.Tokens)})
			}

			title := fmt.Sprintf("Prompt sizes (%d atoms, ~chars/4 tokens)", st.Atoms)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(title, []string{"block", "chars", "tokens", "with core"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
