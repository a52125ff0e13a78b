package errors

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestStatementError_PgError(t *testing.T) {
	err := NewStatementError(3, "SELECT nope", &pgconn.PgError{Code: "42703", Message: `column "nope" does not exist`})

	got := err.Error()
	if !strings.Contains(got, "statement 3") || !strings.Contains(got, "[42703]") {
		t.Errorf("unexpected message: %s", got)
	}

	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		t.Error("StatementError should unwrap to *pgconn.PgError")
	}
}

func TestStatementError_Plain(t *testing.T) {
	cause := stderrors.New("no such table: users")
	err := NewStatementError(1, "SELECT * FROM users", cause)

	if !stderrors.Is(err, cause) {
		t.Error("StatementError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "no such table") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestCaptureError_Unwrap(t *testing.T) {
	cause := stderrors.New("target closed")
	err := NewCaptureError(2, cause)
	if !stderrors.Is(err, cause) {
		t.Error("CaptureError should unwrap to its cause")
	}
}

func TestConnectionError_Suggestion(t *testing.T) {
	err := NewConnectionError("postgres", "dial tcp: refused", "check the server is running")
	if !strings.Contains(err.Error(), "check the server") {
		t.Errorf("suggestion missing from %q", err.Error())
	}
}
