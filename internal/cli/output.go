package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (validation, pipeline, partial cascade)
	ExitCommandError = 2 // Command error (invalid paths, vault cannot be opened)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string   `json:"status"`            // "ok"
	Data    any      `json:"data,omitempty"`    // success payload
	Dropped []int    `json:"dropped,omitempty"` // best-effort items that were skipped
	Notes   []string `json:"notes,omitempty"`   // human-readable annotations
}

// Success outputs a successful result in the configured format.
// In text mode data must be a fmt.Stringer or string; JSON mode
// marshals the full response envelope.
func (f *OutputFormatter) Success(data any) error {
	return f.emit(CLIResponse{Status: "ok", Data: data}, data)
}

// SuccessAnnotated outputs a successful result that dropped some
// best-effort items: the operation worked, but the caller must see
// what was lost.
func (f *OutputFormatter) SuccessAnnotated(data any, dropped []int, notes ...string) error {
	return f.emit(CLIResponse{Status: "ok", Data: data, Dropped: dropped, Notes: notes}, data)
}

func (f *OutputFormatter) emit(resp CLIResponse, data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	switch v := data.(type) {
	case string:
		fmt.Fprintln(f.Writer, v)
	case fmt.Stringer:
		fmt.Fprintln(f.Writer, v.String())
	default:
		fmt.Fprintf(f.Writer, "%v\n", v)
	}
	for _, n := range resp.Notes {
		fmt.Fprintf(f.Writer, "note: %s\n", n)
	}
	return nil
}
