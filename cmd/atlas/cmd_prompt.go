package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/prompt"
	"atlas/internal/types"
)

func newPromptCmd() *cobra.Command {
	var (
		episode   string
		situation string
		render    bool
		coreOnly  bool
		knowledge bool
	)

	cmd := &cobra.Command{
		Use:       "prompt [area]",
		Short:     "Print the system prompt for an area",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: types.AreaStrings(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var area types.Area
			if len(args) == 1 {
				parsed, err := types.ParseArea(args[0])
				if err != nil {
					return err
				}
				area = parsed
			}
			if knowledge && area == "" {
				return fmt.Errorf("--knowledge needs an area")
			}

			a, err := newApp(cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			var out string
			switch {
			case coreOnly:
				out = a.engine.CorePrompt()
			case knowledge:
				out = a.engine.AreaKnowledge(area, prompt.AreaContext{Episode: episode})
			default:
				out = a.engine.SystemPromptWithSituation(area, prompt.AreaContext{Episode: episode}, situation)
			}

			if render {
				out, err = renderMarkdown(out)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&episode, "episode", "", "Mythology Channel episode id (adds its deep dive)")
	cmd.Flags().StringVar(&situation, "situation", "", "Situational context appended verbatim")
	cmd.Flags().BoolVar(&render, "render", false, "Render as terminal markdown")
	cmd.Flags().BoolVar(&coreOnly, "core", false, "Print only the core prompt")
	cmd.Flags().BoolVar(&knowledge, "knowledge", false, "Print only the area knowledge block")
	return cmd
}
