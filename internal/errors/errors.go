// Package errors carries the failure taxonomy shared by every snowq
// surface. A failure leaving an internal package is an *E: a
// machine-readable Kind that the CLI and the HTTP handlers map to
// presentation and status codes, a human-readable message, and the
// wrapped cause preserved for errors.Is/As chains.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for status mapping and presentation.
type Kind string

const (
	// ConfigInvalid indicates the resolved configuration cannot be used.
	ConfigInvalid Kind = "config_invalid"
	// ConnectFailed indicates the warehouse connection could not be established.
	ConnectFailed Kind = "connect_failed"
	// MetadataFailed indicates the schema catalog could not be fetched.
	MetadataFailed Kind = "metadata_failed"
	// QueryFailed indicates a SQL statement failed to execute or scan.
	QueryFailed Kind = "query_failed"
	// LLMInitFailed indicates the completion client could not be constructed.
	LLMInitFailed Kind = "llm_init_failed"
	// LLMRequestFailed indicates a completion request was rejected or malformed.
	LLMRequestFailed Kind = "llm_request_failed"
	// ChartFailed indicates a result set could not be rendered as a chart.
	ChartFailed Kind = "chart_failed"
	// KeychainFailed indicates an OS keychain operation failed.
	KeychainFailed Kind = "keychain_failed"
)

// E pairs a Kind with a display message and an optional wrapped cause.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the kind attached to err, or the empty Kind when err
// carries none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Kind("")
}
