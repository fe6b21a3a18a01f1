package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"charscope/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveListen string

// serveCmd runs the HTTP analyze endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Long: `Starts an HTTP server with:
  POST /api/v1/analyze   {"text": "...", "mode": "codepoint|utf16", "korean_policy": "untagged|special"}
  GET  /healthz

Stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from server.listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	log := getLogger()

	opts, err := resolveOptions(analysisFlags{}, c)
	if err != nil {
		return err
	}

	listen := c.Server.Listen
	if serveListen != "" {
		listen = serveListen
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Listen:   listen,
		MaxInput: c.Server.MaxInput,
		Defaults: opts,
	}, log)

	log.Info("Serving analyzer", zap.String("listen", listen), zap.Int("max_input", c.Server.MaxInput))
	return srv.Run(ctx)
}
