package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"atlas/internal/logging"
	"atlas/internal/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Atlas HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			a, err := newApp(cfg, appOptions{withLLM: true, withUsage: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Prompt.WarmOnStart {
				if err := a.engine.Warm(ctx); err != nil {
					return err
				}
			}

			logging.Get(logging.CategoryBoot).Info("Starting %s %s", cfg.Name, cfg.Version)
			srv := server.New(server.Deps{
				Config:   cfg,
				Engine:   a.engine,
				Personas: a.personas,
				Chat:     a.chat,
				Usage:    a.usage,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")
	return cmd
}
