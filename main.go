// Package main is the entry point for the Snowq application.
// It provides plain-language analytics over a Snowflake warehouse.
package main

import (
	"snowq/cli/cmd"
)

func main() {
	cmd.Execute()
}
