package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/internal/metrics"
	"github.com/anthonybishopric/graphfocus/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Start an HTTP server. POST a graph (JSON or DOT) to /render to get an
interactive page back; add ?format=json for the page data.
Metrics are served on /metrics and a health check on /healthz.

  graphfocus serve --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			srv := server.New(server.Options{
				Logger:       a.logger,
				Metrics:      metrics.NewRegistry(),
				Settings:     a.settings,
				FilterOrphan: a.cfg.Render.FilterOrphan,
				Width:        a.cfg.Render.Width,
				Height:       a.cfg.Render.Height,
				Title:        a.cfg.Render.Title,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gs := server.NewGracefulServer(a.cfg.Server.Addr, srv.Handler(), a.logger)
			return gs.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

