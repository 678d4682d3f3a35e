package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aidanlsb/tablink/internal/ui"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count,omitempty"`
}

// commandError is returned by commands and rendered once by execute.
type commandError struct {
	Code       string
	Message    string
	Suggestion string
	Details    interface{}
	Err        error
}

func (e *commandError) Error() string { return e.Message }

func (e *commandError) Unwrap() error { return e.Err }

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Meta: meta})
}

// outputSuccessWithWarnings outputs a successful JSON response with warnings.
func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// outputError outputs an error JSON response.
func outputError(code, message string, details interface{}, suggestion string) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Details:    details,
			Suggestion: suggestion,
		},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError wraps err with a stable code for execute to report.
func handleError(code string, err error, suggestion string) error {
	return &commandError{Code: code, Message: err.Error(), Suggestion: suggestion, Err: err}
}

// handleErrorMsg is handleError for a plain message.
func handleErrorMsg(code, message, suggestion string) error {
	return &commandError{Code: code, Message: message, Suggestion: suggestion}
}

// handleErrorWithDetails handles an error with structured details.
func handleErrorWithDetails(code, message, suggestion string, details interface{}) error {
	return &commandError{Code: code, Message: message, Suggestion: suggestion, Details: details}
}

// reportError writes err as a JSON envelope on stdout or as text on stderr.
// Errors that did not come from a command (flag parsing, unknown commands)
// are reported as INVALID_INPUT.
func reportError(err error, stderr io.Writer) {
	ce := &commandError{Code: ErrInvalidInput, Message: err.Error()}
	var typed *commandError
	if errors.As(err, &typed) {
		ce = typed
	}

	if isJSONOutput() {
		outputError(ce.Code, ce.Message, ce.Details, ce.Suggestion)
		return
	}
	fmt.Fprintln(stderr, ui.Error(ce.Message))
	if ce.Suggestion != "" {
		fmt.Fprintln(stderr, ui.Hint(ce.Suggestion))
	}
}
