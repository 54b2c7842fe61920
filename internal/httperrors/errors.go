// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors translates raw network failures into actionable
// terminal messages. The warehouse and the completion endpoint both sit
// behind corporate networking, so most failures here are environmental.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

type failure int

const (
	failureGeneric failure = iota
	failureTimeout
	failureDNS
	failureRefused
	failureTLS
	failureServer
)

// FormatNetworkError prints a diagnosis of err and returns a wrapped error
// for logging. The context string completes the sentence "while <context>",
// e.g. "connecting to the warehouse".
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}

	switch classify(err) {
	case failureTimeout:
		showTimeout(context)
	case failureDNS:
		showDNS(err, context)
	case failureRefused:
		showRefused(context)
	case failureTLS:
		showTLS(context)
	case failureServer:
		showServer(context)
	default:
		showGeneric(context, err.Error())
	}

	return fmt.Errorf("network error: %w", err)
}

func classify(err error) failure {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return failureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return failureDNS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return failureRefused
	}

	// Driver and HTTP client errors often reach us as strings only.
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded"):
		return failureTimeout
	case strings.Contains(s, "no such host"):
		return failureDNS
	case strings.Contains(s, "connection refused"):
		return failureRefused
	case strings.Contains(s, "tls") || strings.Contains(s, "certificate") || strings.Contains(s, "handshake"):
		return failureTLS
	case strings.Contains(s, "502") || strings.Contains(s, "503") || strings.Contains(s, "504") ||
		strings.Contains(s, "bad gateway") || strings.Contains(s, "service unavailable") ||
		strings.Contains(s, "internal server error"):
		return failureServer
	}

	return failureGeneric
}

func showTimeout(context string) {
	pterm.Printf("⏱️  Connection timeout while %s\n", context)
	pterm.Println()
	pterm.Println("The endpoint took too long to respond. This could mean:")
	pterm.Println("  • The warehouse is resuming from suspension")
	pterm.Println("  • A long-running statement is holding the session")
	pterm.Println("  • A firewall is silently dropping the connection")
	pterm.Println()
	pterm.Println("Please try again in a few moments.")
	pterm.Println()
}

func showDNS(err error, context string) {
	host := "the endpoint"
	var dnsErr *net.DNSError
	var urlErr *url.Error
	if errors.As(err, &dnsErr) && dnsErr.Name != "" {
		host = dnsErr.Name
	} else if errors.As(err, &urlErr) && urlErr.URL != "" {
		host = ExtractHostFromURL(urlErr.URL)
	}

	pterm.Printf("🌐 Cannot resolve %s while %s\n", host, context)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • The account and endpoint names in your configuration")
	pterm.Println("  • Whether you are on the corporate network or VPN")
	pterm.Println("  • DNS settings if you are on a restricted network")
	pterm.Println()
}

func showRefused(context string) {
	pterm.Printf("🚫 Connection refused while %s\n", context)
	pterm.Println()
	pterm.Println("The endpoint is not accepting connections. This could mean:")
	pterm.Println("  • The configured host or port is wrong")
	pterm.Println("  • The service is temporarily down")
	pterm.Println("  • A proxy or firewall is rejecting the connection")
	pterm.Println()
}

func showTLS(context string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", context)
	pterm.Println()
	pterm.Println("Cannot establish a trusted HTTPS connection. This could mean:")
	pterm.Println("  • A TLS-inspecting proxy sits between you and the endpoint")
	pterm.Println("  • The system clock is wrong")
	pterm.Println("  • The endpoint presents an unexpected certificate")
	pterm.Println()
}

func showServer(context string) {
	pterm.Printf("⚠️  Server error while %s\n", context)
	pterm.Println()
	pterm.Println("The upstream service reported an internal error.")
	pterm.Println("This is not a problem with your setup.")
	pterm.Println("  • Check the Snowflake or Azure status pages")
	pterm.Println("  • Please try again in a few minutes")
	pterm.Println()
}

func showGeneric(context string, errDetails string) {
	pterm.Printf("❌ Cannot reach the endpoint while %s\n", context)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • Your internet connection")
	pterm.Println("  • Whether the endpoint requires VPN access")
	pterm.Println("  • Firewall settings that might block HTTPS requests")
	pterm.Println()

	if errDetails != "" {
		shortErr := errDetails
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", shortErr)
		pterm.Println()
	}
}

// ExtractHostFromURL pulls the hostname out of a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "endpoint"
	}
	return u.Host
}
