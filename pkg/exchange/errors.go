package exchange

import (
	"fmt"
)

// ConfigurationError indicates a missing or invalid course or assignment
// identity. The user must fix their configuration and rerun.
type ConfigurationError struct {
	// Message describes the configuration problem.
	Message string
}

// Error implements error.Error.
func (e *ConfigurationError) Error() string {
	return e.Message
}

// NotFoundError indicates that a source assignment is absent. It carries the
// nearest-name suggestion among the sibling directories, if any.
type NotFoundError struct {
	// Path is the missing assignment path.
	Path string
	// Suggestion is the best fuzzy match among existing siblings, if any.
	Suggestion string
}

// Error implements error.Error.
func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("assignment not found at %s (did you mean %s?)", e.Path, e.Suggestion)
	}
	return fmt.Sprintf("assignment not found at %s", e.Path)
}

// PermissionError indicates insufficient read/write/execute access on a
// required path. It is fatal: the user must contact an administrator.
type PermissionError struct {
	// Path is the inaccessible path.
	Path string
	// Message describes the missing access.
	Message string
}

// Error implements error.Error.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

// TransferError indicates that an underlying copy failed. The destination is
// left in whatever partial state the copy produced; there is no rollback.
type TransferError struct {
	// Message describes the failed transfer.
	Message string
	// Cause is the underlying copy error, if any.
	Cause error
}

// Error implements error.Error.
func (e *TransferError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying copy error.
func (e *TransferError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates that the submitted file set doesn't match the
// released set. It is only raised in strict mode; otherwise the mismatch is
// reported as a warning.
type ValidationError struct {
	// Message describes the mismatch.
	Message string
}

// Error implements error.Error.
func (e *ValidationError) Error() string {
	return e.Message
}

// RenderError indicates that static view generation failed.
type RenderError struct {
	// Cause is the underlying renderer error.
	Cause error
}

// Error implements error.Error.
func (e *RenderError) Error() string {
	return fmt.Sprintf("unable to render static view: %v", e.Cause)
}

// Unwrap returns the underlying renderer error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// PlatformUnsupportedError indicates that the current platform lacks the
// POSIX permission semantics required by the shared exchange.
type PlatformUnsupportedError struct {
	// Platform is the offending platform name.
	Platform string
}

// Error implements error.Error.
func (e *PlatformUnsupportedError) Error() string {
	return fmt.Sprintf("the exchange is not available on %s", e.Platform)
}
