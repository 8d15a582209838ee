package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/persona"
)

func newPersonaCmd() *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "persona <planet|zodiac|cardinal> <name>",
		Short: "Print a first-person persona prompt",
		Example: `  atlas persona planet Saturn
  atlas persona zodiac Aries
  atlas persona cardinal winter-solstice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			out, ok := a.personas.Prompt(persona.Descriptor{Type: args[0], Name: args[1]})
			if !ok {
				return fmt.Errorf("no %s persona named %q", args[0], args[1])
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

	cmd.Flags().BoolVar(&render, "render", false, "Render as terminal markdown")
	return cmd
}
