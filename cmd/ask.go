// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"snowq/cli/internal/assistant"
	"snowq/cli/internal/httperrors"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/metrics"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	askJSON    bool
	askChart   string
	verboseAsk bool
)

// askCmd represents the ask command, the main entry point of snowq. It takes
// a plain-language question, lets the completion model translate it into SQL
// against the live schema, executes the statement and renders the answer.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the warehouse a question in plain language",
	Long: `The ask command answers a plain-language question from the warehouse. It
fetches the schema catalog, asks the completion model for a matching SQL
statement, executes it and summarizes the result in one headline sentence.
When the result has a label column and a numeric column, a bar chart HTML
fragment is generated as well.

Example:
  snowq ask "which region had the most orders last month?"`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		// --verbose flips debug output on for every package this run touches
		if verboseAsk {
			os.Setenv("SNOWQ_VERBOSE", "1")
			os.Setenv("SNOWQ_LOG_LEVEL", "debug")
		}

		question := strings.TrimSpace(strings.Join(args, " "))

		cfg, logger, err := setup()
		if err != nil {
			return err
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

		a := assistant.New(completer, session, logger)

		stopSpinner := startSpinner("thinking")
		resp, err := a.Answer(ctx, question)
		stopSpinner()
		metrics.ObserveAsk(err)
		if err != nil {
			var urlErr *url.Error
			if errors.As(err, &urlErr) {
				return httperrors.FormatNetworkError(err, "calling the completion endpoint")
			}
			pterm.Printf("❌ Could not answer the question\n")
			pterm.Println(logging.PresentError("", err))
			return err
		}

		if askJSON {
			return printJSON(resp)
		}

		pterm.Println()
		pterm.Println(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint(resp.Headline))
		pterm.Println()
		renderTable(resp.Table)
		pterm.Println()
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprint("SQL: ") + pterm.NewStyle(pterm.FgLightBlue).Sprint(resp.SQL))

		if askChart != "" {
			if resp.ChartHTML == "" {
				pterm.Println("⚠️  This result cannot be charted (need a label column and a numeric column).")
			} else {
				if err := os.WriteFile(askChart, []byte(resp.ChartHTML), 0o644); err != nil {
					return err
				}
				pterm.Println("Chart written to " + askChart)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output the full response as JSON")
	askCmd.Flags().StringVar(&askChart, "chart", "", "Write the bar chart HTML fragment to this file")
	askCmd.Flags().BoolVarP(&verboseAsk, "verbose", "v", false, "Enable verbose debug output")
}
