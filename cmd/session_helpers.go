// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides CLI commands for the Snowq analytics assistant.
// This file contains shared helpers for configuration loading, warehouse
// session setup and interactive prompts.
package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"snowq/cli/internal/config"
	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/httperrors"
	"snowq/cli/internal/llm"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/warehouse"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// setup loads the configuration and builds the logger. Secrets missing from
// the environment are filled from the OS keychain when available.
func setup() (config.Config, *zap.SugaredLogger, error) {
	logger := logging.NewLogger(os.Getenv("SNOWQ_LOG_LEVEL"))

	cfg, err := config.Load(logger)
	if err != nil {
		return config.Config{}, nil, err
	}
	if os.Getenv("SNOWQ_LOG_LEVEL") == "" {
		logger = logging.NewLogger(cfg.LogLevel)
	}

	cfg.FillSecretsFromKeychain()
	return cfg, logger, nil
}

func warehouseSettings(cfg config.Config) warehouse.Settings {
	return warehouse.Settings{
		Account:   cfg.Account,
		Host:      cfg.Host,
		User:      cfg.User,
		Password:  cfg.Password,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
	}
}

// openSession resolves credentials and opens a verified warehouse session.
// The caller owns the session and must Close it.
func openSession(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*warehouse.Session, error) {
	params, err := warehouse.NewTokenSource().ResolveParams(warehouseSettings(cfg))
	if err != nil {
		return nil, err
	}

	db, err := warehouse.NewConnector(params, logger).Open(ctx)
	if err != nil {
		return nil, err
	}
	return warehouse.NewSession(db, logger), nil
}

// newCompleter builds the chat completion client from configuration.
func newCompleter(cfg config.Config) (*llm.Client, error) {
	return llm.New(llm.Config{
		Endpoint:   cfg.Endpoint,
		APIKey:     cfg.APIKey,
		Deployment: cfg.Deployment,
		APIVersion: cfg.APIVersion,
	})
}

// readLine prompts on stdout and returns the trimmed input line.
func readLine(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readSecret prompts for a value without echoing it to the terminal.
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// presentOpenError explains a failed session open. Configuration problems
// point at connect; anything else is diagnosed as a network failure.
func presentOpenError(err error) error {
	if apperrors.KindOf(err) == apperrors.ConfigInvalid {
		fmt.Println("⚠️  " + err.Error())
		fmt.Println("   Please run 'snowq connect' to configure the warehouse.")
		return err
	}
	return httperrors.FormatNetworkError(err, "connecting to the warehouse")
}

// printJSON writes v as indented JSON to stdout for scripting use.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// renderTable prints a query result with a header row.
func renderTable(table *warehouse.Table) {
	if table.Empty() {
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprint("(no rows)"))
		return
	}

	data := pterm.TableData{table.Columns}
	for _, row := range table.StringRows() {
		data = append(data, row)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
