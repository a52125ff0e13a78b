package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConnectionError represents a database connection failure
type ConnectionError struct {
	Driver     string
	Message    string
	Suggestion string
}

func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("failed to connect (%s): %s", e.Driver, e.Message)
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return msg
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(driver, message, suggestion string) *ConnectionError {
	return &ConnectionError{
		Driver:     driver,
		Message:    message,
		Suggestion: suggestion,
	}
}

// StatementError represents the failure of one statement
type StatementError struct {
	Index int
	SQL   string
	Err   error
}

func (e *StatementError) Error() string {
	var pgErr *pgconn.PgError
	if stderrors.As(e.Err, &pgErr) {
		return fmt.Sprintf("statement %d failed: [%s] %s", e.Index, pgErr.Code, pgErr.Message)
	}
	return fmt.Sprintf("statement %d failed: %v", e.Index, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError
func NewStatementError(index int, sql string, err error) *StatementError {
	return &StatementError{
		Index: index,
		SQL:   sql,
		Err:   err,
	}
}

// UnsupportedCommandError is returned for dot commands a database cannot run
type UnsupportedCommandError struct {
	Command string
	Driver  string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("dot command .%s is not supported by %s", e.Command, e.Driver)
}

// NewUnsupportedCommandError creates a new UnsupportedCommandError
func NewUnsupportedCommandError(command, driver string) *UnsupportedCommandError {
	return &UnsupportedCommandError{
		Command: command,
		Driver:  driver,
	}
}

// RenderError represents a failure to render a page
type RenderError struct {
	Index   int
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render page %d: %s", e.Index, e.Message)
}

// NewRenderError creates a new RenderError
func NewRenderError(index int, message string) *RenderError {
	return &RenderError{
		Index:   index,
		Message: message,
	}
}

// CaptureError represents a browser screenshot failure
type CaptureError struct {
	Index int
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("failed to capture page %d: %v", e.Index, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError
func NewCaptureError(index int, err error) *CaptureError {
	return &CaptureError{
		Index: index,
		Err:   err,
	}
}
