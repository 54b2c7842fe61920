// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"snowq/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	metadataJSON bool
)

// metadataCmd represents the metadata command for browsing the warehouse
// schema. It lists every table in the configured database and schema with
// its columns and data types.
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Browse tables and columns of the configured warehouse",
	Long: `The metadata command introspects INFORMATION_SCHEMA for the configured
database and schema and lists every table with its columns and data types.
This is the same catalog the assistant uses to generate SQL, so it is a quick
way to see what questions the warehouse can answer.

Use --json for machine-readable output.`,

	RunE: func(cmd *cobra.Command, args []string) error {
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

		stopSpinner := startSpinner("fetching metadata")
		catalog, err := session.Catalog(ctx)
		stopSpinner()
		if err != nil {
			pterm.Printf("❌ Failed to fetch metadata\n")
			pterm.Println(logging.PresentError("", err))
			return err
		}

		if metadataJSON {
			return printJSON(catalog)
		}

		if len(catalog) == 0 {
			pterm.Println("No tables found.")
			pterm.Println("Check SNOWFLAKE_DATABASE and SNOWFLAKE_SCHEMA or run 'snowq connect'.")
			return nil
		}

		var items []pterm.BulletListItem
		for _, table := range catalog.Tables() {
			items = append(items, pterm.BulletListItem{
				Level: 0,
				Text:  pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(table),
			})
			for _, col := range catalog.ColumnsOf(table) {
				items = append(items, pterm.BulletListItem{
					Level: 1,
					Text:  fmt.Sprintf("%s  %s", col, pterm.NewStyle(pterm.FgGray).Sprint(catalog[table][col])),
				})
			}
		}
		_ = pterm.DefaultBulletList.WithItems(items).Render()
		pterm.Printf("%d tables\n", len(catalog))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.Flags().BoolVar(&metadataJSON, "json", false, "Output the catalog as JSON")
}
