// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"snowq/cli/internal/api"
	"snowq/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
)

// serveCmd represents the serve command for running the HTTP API. It exposes
// the warehouse and the assistant to dashboards and internal automation.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the warehouse and assistant over HTTP",
	Long: `The serve command starts an HTTP server exposing the snowq capabilities:

  GET  /healthz       warehouse connectivity check
  GET  /api/metadata  schema catalog as JSON
  POST /api/query     execute a SQL statement ({"sql": "..."})
  POST /api/ask       answer a plain-language question ({"question": "..."})
  GET  /metrics       Prometheus metrics

The server verifies the warehouse connection and the completion model
configuration before listening and shuts down gracefully on SIGINT/SIGTERM.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.HTTPAddr = serveAddr
		}
		ctx := cmd.Context()

		completer, err := newCompleter(cfg)
		if err != nil {
			pterm.Printf("❌ Completion model not configured\n")
			pterm.Println(logging.PresentError("", err))
			return err
		}

		session, err := openSession(ctx, cfg, logger)
		if err != nil {
			return presentOpenError(err)
		}
		defer session.Close()

		return api.New(cfg.HTTPAddr, session, completer, logger).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to SNOWQ_HTTP_ADDR)")
}
