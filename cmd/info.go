// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"snowq/cli/internal/config"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/warehouse"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command for displaying the resolved
// configuration. It shows which account, warehouse and completion deployment
// snowq will use, with all secrets masked.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show current connection and model settings",
	Long: `The info command displays the currently resolved warehouse and completion
model settings with secrets masked. This helps verify which account and
deployment snowq will talk to without exposing credentials.

Secrets are shown as *** together with where they were found (environment or
OS keychain).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewLogger(os.Getenv("SNOWQ_LOG_LEVEL"))
		cfg, err := config.Load(logger)
		if err != nil {
			return err
		}

		passwordSource := ""
		if strings.TrimSpace(cfg.Password) != "" {
			passwordSource = "environment"
		}
		apiKeySource := ""
		if strings.TrimSpace(cfg.APIKey) != "" {
			apiKeySource = "environment"
		}

		cfg.FillSecretsFromKeychain()
		if passwordSource == "" && cfg.Password != "" {
			passwordSource = "OS keychain"
		}
		if apiKeySource == "" && cfg.APIKey != "" {
			apiKeySource = "OS keychain"
		}

		token, _ := warehouse.NewTokenSource().Read()
		mode := "password"
		if token != "" {
			mode = "oauth (platform session token)"
		}

		warehouseInfo := strings.Join([]string{
			"Account:    " + orUnset(cfg.Account),
			"Host:       " + orDefault(cfg.Host),
			"User:       " + orUnset(cfg.User),
			"Password:   " + secretInfo(passwordSource),
			"Warehouse:  " + orDefault(cfg.Warehouse),
			"Database:   " + orDefault(cfg.Database),
			"Schema:     " + orDefault(cfg.Schema),
			"Auth mode:  " + mode,
		}, "\n")

		modelInfo := strings.Join([]string{
			"Endpoint:    " + orUnset(cfg.Endpoint),
			"Deployment:  " + orUnset(cfg.Deployment),
			"API version: " + cfg.APIVersion,
			"API key:     " + secretInfo(apiKeySource),
		}, "\n")

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Warehouse Connection")).
			WithPadding(1).
			Println(warehouseInfo)
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Completion Model")).
			WithPadding(1).
			Println(modelInfo)
		pterm.Println()
		pterm.Println("To update these settings, run: snowq connect")
		pterm.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func orUnset(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(not set)"
	}
	return v
}

func orDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(account default)"
	}
	return v
}

// secretInfo renders a masked secret with its source, never the value.
func secretInfo(source string) string {
	if source == "" {
		return "(not set)"
	}
	return fmt.Sprintf("*** (%s)", source)
}
