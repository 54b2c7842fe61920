// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"snowq/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// keysCmd groups the keychain management subcommands. Secrets never live in
// the config file; this is the only way snowq persists them between runs.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage secrets in the OS keychain",
	Long: `The keys command manages the secrets snowq stores in the OS keychain:
the warehouse password and the completion model API key. The keychain is
only supported on macOS and Windows; on other systems secrets must be
provided through environment variables.`,
}

var keysSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Store the warehouse password in the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   Keychain is only supported on macOS and Windows.")
			return err
		}

		pw, err := readSecret("Snowflake password: ")
		if err != nil {
			return err
		}
		if pw == "" {
			return errors.New("empty password, nothing saved")
		}

		if err := km.SaveWarehousePassword(pw); err != nil {
			fmt.Println("❌ Failed to save the password securely.")
			return err
		}
		fmt.Println("✅ Warehouse password saved to the OS keychain")
		return nil
	},
}

var keysSetAPIKeyCmd = &cobra.Command{
	Use:   "set-api-key",
	Short: "Store the completion model API key in the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   Keychain is only supported on macOS and Windows.")
			return err
		}

		key, err := readSecret("API key: ")
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("empty API key, nothing saved")
		}

		if err := km.SaveAPIKey(key); err != nil {
			fmt.Println("❌ Failed to save the API key securely.")
			return err
		}
		fmt.Println("✅ API key saved to the OS keychain")
		return nil
	},
}

// keysClearCmd removes everything snowq stored. Best effort: a missing
// keychain backend means there is nothing to remove.
var keysClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all snowq secrets from the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if km, err := keychain.GetManager(); err == nil {
			_ = km.ClearAll()
		}
		fmt.Println("✅ All stored secrets have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysSetPasswordCmd)
	keysCmd.AddCommand(keysSetAPIKeyCmd)
	keysCmd.AddCommand(keysClearCmd)
}
