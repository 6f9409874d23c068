package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"printfind/internal/server"
)

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if serveAddr != "" {
				cfg.Server.Addr = serveAddr
			}

			p := newPipeline(cfg)
			defer p.Close()

			reqTimeout := time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second
			return server.Serve(ctx, cfg.Server.Addr, server.Handler(p.agg, reqTimeout))
		},
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	return cmd
}
