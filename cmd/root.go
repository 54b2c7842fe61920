// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Snowq application.
// It implements subcommands for configuring the warehouse connection, browsing
// metadata, running ad-hoc SQL and asking plain-language questions, using the
// Cobra CLI framework. The package handles command parsing, execution, and
// provides a rich terminal UI with spinners and formatted output.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the Snowq application.
var rootCmd = &cobra.Command{
	Use:   "snowq",
	Short: "Ask your Snowflake warehouse questions in plain language",
	Long: `Snowq is a command-line analytics assistant for a Snowflake warehouse.
It introspects the schema, translates questions into SQL through a chat
completion model, executes the statement and renders the result as a table,
a one-line headline and an optional bar chart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("snowq %s\n", versionString())
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute dispatches the root command. Command errors have already been
// presented by the failing RunE; this prints the bare error and exits
// non-zero so scripts can detect the failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
