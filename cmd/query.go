// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"os"
	"strings"
	"time"

	"snowq/cli/internal/chart"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/metrics"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	queryJSON  bool
	queryChart string
	queryTitle string
)

// queryCmd represents the query command for running ad-hoc SQL. Results are
// rendered as a terminal table, as JSON for scripting, or as a bar chart
// fragment written to a file.
var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run an ad-hoc SQL statement against the warehouse",
	Long: `The query command executes a SQL statement against the configured warehouse
and renders the result. By default the result is printed as a table; --json
prints it as JSON and --chart writes a bar chart HTML fragment built from the
first two result columns.

Example:
  snowq query "SELECT region, SUM(amount) FROM orders GROUP BY region"`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		sqlText := strings.TrimSpace(strings.Join(args, " "))
		if sqlText == "" {
			return errors.New("SQL statement required")
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		session, err := openSession(ctx, cfg, logger)
		if err != nil {
			return presentOpenError(err)
		}
		defer session.Close()

		start := time.Now()
		stopSpinner := startSpinner("executing")
		table, err := session.Run(ctx, sqlText)
		stopSpinner()
		metrics.ObserveQuery(err, time.Since(start))
		if err != nil {
			pterm.Printf("❌ Query failed\n")
			pterm.Println(logging.PresentError("", err))
			return err
		}

		if queryJSON {
			return printJSON(table)
		}

		renderTable(table)
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprintf("%d rows in %s", len(table.Rows), time.Since(start).Round(time.Millisecond)))

		if queryChart != "" {
			title := queryTitle
			if title == "" {
				title = sqlText
				if len(title) > 60 {
					title = title[:60] + "..."
				}
			}
			html, err := chart.Bar(table, title)
			if err != nil {
				pterm.Printf("❌ Cannot chart this result\n")
				pterm.Println(logging.PresentError("", err))
				return err
			}
			if err := os.WriteFile(queryChart, []byte(html), 0o644); err != nil {
				return err
			}
			pterm.Println("Chart written to " + queryChart)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Output the result as JSON")
	queryCmd.Flags().StringVar(&queryChart, "chart", "", "Write a bar chart HTML fragment to this file")
	queryCmd.Flags().StringVar(&queryTitle, "title", "", "Chart title (defaults to the statement)")
}
