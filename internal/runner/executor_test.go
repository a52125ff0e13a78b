package runner

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/errors"
	"github.com/enix403/gen-sql-pdf/internal/parser"
	"github.com/enix403/gen-sql-pdf/internal/testutil"
)

// blockingQuerier waits for the context on every statement containing "slow".
type blockingQuerier struct{}

func (blockingQuerier) Query(ctx context.Context, stmt *parser.Statement) (*database.Answer, error) {
	if stmt.SQL == "slow" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &database.Answer{SQL: stmt.SQL}, nil
}

func (blockingQuerier) Dialect() database.Dialect { return database.DialectSQLite }
func (blockingQuerier) Close() error              { return nil }

func TestExecuteBatch_OrderAndFailures(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:", 0)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	stmts := testutil.Statements(t, `
CREATE TABLE t (v INTEGER);
INSERT INTO t VALUES (1);
SELECT * FROM missing;
SELECT v FROM t;`)

	runs, err := NewExecutor(db, 5*time.Second).ExecuteBatch(ctx, stmts)
	if err != nil {
		t.Fatalf("ExecuteBatch() error = %v", err)
	}

	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(runs))
	}

	wantStatus := []RunStatus{RunSucceeded, RunSucceeded, RunFailed, RunSucceeded}
	for i, run := range runs {
		if run.Statement != stmts[i] {
			t.Errorf("run[%d] belongs to the wrong statement", i)
		}
		if run.Status != wantStatus[i] {
			t.Errorf("run[%d].Status = %v, want %v (err: %v)", i, run.Status, wantStatus[i], run.Error)
		}
	}

	var stmtErr *errors.StatementError
	if !stderrors.As(runs[2].Error, &stmtErr) || stmtErr.Index != 3 {
		t.Errorf("expected StatementError for statement 3, got %v", runs[2].Error)
	}

	if got := runs[3].Answer.Rows[0][0].Value; got != "1" {
		t.Errorf("last statement saw %q, want 1", got)
	}

	summary := SummarizeRuns(runs)
	if summary.Total != 4 || summary.Succeeded != 3 || summary.Failed != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", summary.ExitCode())
	}
}

func TestExecute_Timeout(t *testing.T) {
	exec := NewExecutor(blockingQuerier{}, 20*time.Millisecond)

	run := exec.Execute(context.Background(), &parser.Statement{Index: 1, SQL: "slow"})
	if run.Status != RunTimeout {
		t.Fatalf("Status = %v, want timeout", run.Status)
	}
	if !stderrors.Is(run.Error, context.DeadlineExceeded) {
		t.Errorf("Error = %v, want deadline exceeded", run.Error)
	}
}

func TestExecuteBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs, err := NewExecutor(blockingQuerier{}, 0).ExecuteBatch(ctx, []*parser.Statement{{Index: 1, SQL: "fast"}})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs after cancellation, want 0", len(runs))
	}
}

func TestRunSummary_AllSucceeded(t *testing.T) {
	summary := SummarizeRuns([]*StatementRun{
		{Status: RunSucceeded, StartTime: time.Now(), EndTime: time.Now()},
	})
	if summary.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", summary.ExitCode())
	}
}

func TestRunStatus_String(t *testing.T) {
	if RunTimeout.String() != "timeout" || RunStatus(42).String() != "unknown" {
		t.Error("unexpected RunStatus strings")
	}
}
