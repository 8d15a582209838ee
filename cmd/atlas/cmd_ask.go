package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"atlas/internal/chat"
	"atlas/internal/persona"
	"atlas/internal/types"
)

func newAskCmd() *cobra.Command {
	var (
		area        string
		episode     string
		personaFlag string
		situation   string
		render      bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask Atlas a one-shot question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, appOptions{withLLM: true, withUsage: true})
			if err != nil {
				return err
			}
			defer a.Close()

			req := chat.Request{
				Messages:  []types.Message{{Role: types.RoleUser, Content: strings.Join(args, " ")}},
				Area:      area,
				Episode:   episode,
				Situation: situation,
			}
			if personaFlag != "" {
				d, err := parsePersonaFlag(personaFlag)
				if err != nil {
					return err
				}
				req.Persona = &d
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			resp, err := a.chat.Reply(ctx, req)
			if err != nil {
				return err
			}

			out := resp.Reply
			if render {
				out, err = renderMarkdown(out)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			for _, l := range resp.Links {
				fmt.Fprintf(cmd.OutOrStdout(), "  -> %s: %s\n", l.Label, l.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Force an area instead of classifying")
	cmd.Flags().StringVar(&episode, "episode", "", "Mythology Channel episode id")
	cmd.Flags().StringVar(&personaFlag, "persona", "", "Persona as type:name (e.g. planet:Mars)")
	cmd.Flags().StringVar(&situation, "situation", "", "Situational context appended to the prompt")
	cmd.Flags().BoolVar(&render, "render", false, "Render the reply as terminal markdown")
	return cmd
}

// parsePersonaFlag splits "type:name".
func parsePersonaFlag(s string) (persona.Descriptor, error) {
	typ, name, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(typ) == "" || strings.TrimSpace(name) == "" {
		return persona.Descriptor{}, fmt.Errorf("persona must be type:name, got %q", s)
	}
	return persona.Descriptor{Type: strings.TrimSpace(typ), Name: strings.TrimSpace(name)}, nil
}
