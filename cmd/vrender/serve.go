package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrender/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port       int
		host       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start a preview server for the pages in vrender.json.

Documents are read on every request, so edits show up on reload.
Metrics are served on the configured metrics path.

Examples:
  vrender serve
  vrender serve --port=8080
  vrender serve --config site/vrender.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vrender.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vrender.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vrender.json")

	return cmd
}

func runServe(cmd *cobra.Command, configPath, host string, port int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	out := cmd.OutOrStdout()
	success(out, "Serving %d pages on %s", len(cfg.Pages), cfg.URL())
	for _, route := range cfg.Routes() {
		info(out, "%s → %s", route, cfg.Pages[route])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	srv := server.New(cfg, server.WithLogger(slog.Default()))
	return srv.Run(ctx)
}
