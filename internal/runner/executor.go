package runner

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/errors"
	"github.com/enix403/gen-sql-pdf/internal/logger"
	"github.com/enix403/gen-sql-pdf/internal/parser"
)

// Executor runs statements in input order against one database
type Executor struct {
	querier database.Querier
	timeout time.Duration
}

// NewExecutor creates a new statement executor. A zero timeout disables the
// per-statement deadline.
func NewExecutor(querier database.Querier, timeout time.Duration) *Executor {
	return &Executor{
		querier: querier,
		timeout: timeout,
	}
}

// Execute runs a single statement. Failures are recorded on the returned run.
func (e *Executor) Execute(ctx context.Context, stmt *parser.Statement) *StatementRun {
	run := &StatementRun{
		Statement: stmt,
		StartTime: time.Now(),
		Status:    RunRunning,
	}

	stmtCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		stmtCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	answer, err := e.querier.Query(stmtCtx, stmt)
	run.EndTime = time.Now()

	switch {
	case err == nil:
		run.Status = RunSucceeded
		run.Answer = answer
	case stderrors.Is(stmtCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		run.Status = RunTimeout
		run.Error = errors.NewStatementError(stmt.Index, stmt.SQL, stmtCtx.Err())
	default:
		run.Status = RunFailed
		run.Error = errors.NewStatementError(stmt.Index, stmt.SQL, err)
	}

	return run
}

// ExecuteBatch runs statements sequentially. A failed statement does not stop
// the batch; cancelling ctx does, and the runs completed so far are returned
// along with the context error.
func (e *Executor) ExecuteBatch(ctx context.Context, stmts []*parser.Statement) ([]*StatementRun, error) {
	runs := make([]*StatementRun, 0, len(stmts))

	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return runs, err
		}

		logger.Debug("Executing statement %d/%d", stmt.Index, len(stmts))
		run := e.Execute(ctx, stmt)
		if run.Error != nil {
			logger.Error("%v", run.Error)
		}

		runs = append(runs, run)
	}

	return runs, nil
}

// SummarizeRuns creates a summary of execution results
func SummarizeRuns(runs []*StatementRun) *RunSummary {
	summary := &RunSummary{
		Total: len(runs),
	}

	for _, run := range runs {
		summary.Duration += run.Duration()

		switch run.Status {
		case RunSucceeded:
			summary.Succeeded++
		case RunFailed:
			summary.Failed++
		case RunTimeout:
			summary.TimedOut++
		}
	}

	return summary
}
