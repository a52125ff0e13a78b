package runner

import (
	"time"

	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/parser"
)

// StatementRun represents the execution of a single statement
type StatementRun struct {
	Statement *parser.Statement
	Answer    *database.Answer // Nil unless the statement succeeded
	StartTime time.Time
	EndTime   time.Time
	Status    RunStatus
	Error     error // Non-nil if the statement failed
}

// RunStatus represents the current state of a statement execution
type RunStatus int

const (
	RunPending RunStatus = iota
	RunRunning
	RunSucceeded
	RunFailed
	RunTimeout
)

// String returns a string representation of RunStatus
func (rs RunStatus) String() string {
	switch rs {
	case RunPending:
		return "pending"
	case RunRunning:
		return "running"
	case RunSucceeded:
		return "succeeded"
	case RunFailed:
		return "failed"
	case RunTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Duration returns the statement execution duration
func (r *StatementRun) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Succeeded reports whether the statement produced an answer
func (r *StatementRun) Succeeded() bool {
	return r.Status == RunSucceeded
}

// RunSummary summarizes all statement executions
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int
	TimedOut  int
	Duration  time.Duration
}

// AllSucceeded returns true if every statement succeeded
func (s *RunSummary) AllSucceeded() bool {
	return s.Failed == 0 && s.TimedOut == 0
}

// ExitCode returns the appropriate exit code based on statement results
func (s *RunSummary) ExitCode() int {
	if s.AllSucceeded() {
		return 0
	}
	return 1
}
