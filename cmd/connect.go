// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"snowq/cli/internal/config"
	"snowq/cli/internal/keychain"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/warehouse"

	"github.com/spf13/cobra"
)

var (
	verboseConnect bool
)

// connectCmd represents the connect command for establishing the warehouse
// connection. It prompts for any settings the environment leaves unset,
// verifies connectivity and saves the configuration. The password goes to
// the OS keychain, never to disk.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Configure and verify the Snowflake connection",
	Long: `The connect command collects the Snowflake connection settings, verifies
the connection and saves the configuration for future use. Settings already
present in the environment (SNOWFLAKE_ACCOUNT, SNOWFLAKE_USER, ...) are not
prompted for. The password is stored in the OS keychain; everything else goes
to the config file.

Inside the Snowflake platform the mounted session token is used instead of a
password and no credentials are prompted for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// --verbose flips debug output on for every package this run touches
		if verboseConnect {
			os.Setenv("SNOWQ_VERBOSE", "1")
			os.Setenv("SNOWQ_LOG_LEVEL", "debug")
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		token, err := warehouse.NewTokenSource().Read()
		if err != nil {
			return err
		}
		if token != "" {
			fmt.Println("Detected a platform session token; using OAuth authentication.")
		}

		promptedPassword := false
		if cfg.Account == "" {
			cfg.Account = readLine("Snowflake account (e.g. xy12345.eu-central-1): ")
		}
		if token == "" {
			if cfg.User == "" {
				cfg.User = readLine("Snowflake user: ")
			}
			if cfg.Password == "" {
				pw, err := readSecret("Snowflake password: ")
				if err != nil {
					return err
				}
				cfg.Password = pw
				promptedPassword = true
			}
		}
		if cfg.Warehouse == "" {
			cfg.Warehouse = readLine("Warehouse (optional): ")
		}
		if cfg.Database == "" {
			cfg.Database = readLine("Database (optional): ")
		}
		if cfg.Schema == "" {
			cfg.Schema = readLine("Schema (optional): ")
		}

		params, err := warehouse.Resolve(warehouseSettings(cfg), token)
		if err != nil {
			return err
		}

		startTime := time.Now()
		stopSpinner := startSpinner("verifying connection")

		// Suspended warehouses can take a while to resume.
		ctxPing, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err := warehouse.NewConnector(params, logger).Open(ctxPing)
		if err != nil {
			stopSpinner()
			fmt.Println("Connection failed. Please check your credentials and network connection.")
			fmt.Println(logging.PresentError("", err))
			return err
		}
		defer db.Close()

		// Hold the spinner for at least two seconds before reporting
		if elapsed := time.Since(startTime); elapsed < 2*time.Second {
			time.Sleep(2*time.Second - elapsed)
		}
		stopSpinner()

		if err := config.Save(cfg); err != nil {
			logger.Debugw("config save failed", "error", err)
		}

		if promptedPassword {
			if km, err := keychain.GetManager(); err != nil {
				fmt.Println("⚠️  Secure storage is not available on this system.")
				fmt.Println("   Keychain is only supported on macOS and Windows.")
				fmt.Println("   Connection verified but the password was not saved.")
			} else if err := km.SaveWarehousePassword(cfg.Password); err != nil {
				fmt.Println("❌ Failed to save the password securely.")
				return err
			}
		}

		fmt.Println("✅ Warehouse connection verified and saved!")
		fmt.Println("   You're ready to run 'snowq ask'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().BoolVarP(&verboseConnect, "verbose", "v", false, "Enable verbose debug output")
}
