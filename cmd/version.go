// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

// Build metadata, overridden at release time with ldflags:
//
//	go build -ldflags "-X snowq/cli/cmd.Version=v1.2.0 -X snowq/cli/cmd.Commit=4f9c1d2"
var (
	// Version is the semantic version of this build.
	Version = "0.0.0-dev"
	// Commit is the short hash the binary was built from.
	Commit = ""
)

// versionString combines version and commit for display.
func versionString() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
