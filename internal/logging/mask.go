// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging builds the process logger and scrubs secrets from
// anything headed for a terminal or a log line.
//
// Warehouse passwords, session tokens and LLM api keys travel through
// DSNs, env-style pairs and HTTP error bodies. Mask rewrites every one
// of those shapes before display, and PresentError renders failures for
// the operator under the same guarantee.
package logging

import (
	"fmt"
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reDSNPass  = regexp.MustCompile(`(?i)([a-z][a-z0-9+.-]*://)?([^:/@\s]+):([^@\s]+)@`) // user:pass@account, with or without scheme
	reAPIKey   = regexp.MustCompile(`(?i)(api[-_]?key[=:]\s*)([^\s;&]+)`)
	reEnvPair  = regexp.MustCompile(`(SNOWFLAKE_PASSWORD|SNOWFLAKE_TOKEN|OPENAI_API_KEY)=\S+`)
)

// Mask redacts credential material embedded in s. For DSN userinfo both
// the username and the password are replaced. Snowflake DSNs carry
// credentials without a scheme prefix (user:pass@account/db), so the
// scheme is optional in the credential pattern.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reDSNPass.ReplaceAllString(out, "$1*:*@")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reEnvPair.ReplaceAllString(out, "$1=***")
	return out
}

// PresentError formats an error for user display with masking. An empty
// context yields just the masked message.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(err.Error())
	if context == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
