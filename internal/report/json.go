package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/runner"
)

// JSONReporter writes statement results as JSON
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

type jsonReport struct {
	Title      string          `json:"title"`
	RunID      string          `json:"run_id,omitempty"`
	Generated  time.Time       `json:"generated"`
	Statements []jsonStatement `json:"statements"`
}

type jsonStatement struct {
	Index      int              `json:"index"`
	SQL        string           `json:"sql"`
	Type       string           `json:"type"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	DurationMS int64            `json:"duration_ms"`
	Answer     *database.Answer `json:"answer,omitempty"`
}

// Format writes the runs as indented JSON
func (r *JSONReporter) Format(ctx context.Context, runs []*runner.StatementRun, writer io.Writer) error {
	out := jsonReport{
		Title:      r.opts.Title,
		RunID:      r.opts.RunID,
		Generated:  time.Now().UTC(),
		Statements: make([]jsonStatement, 0, len(runs)),
	}

	for _, run := range runs {
		stmt := jsonStatement{
			Index:      run.Statement.Index,
			SQL:        run.Statement.SQL,
			Type:       run.Statement.Type.String(),
			Status:     run.Status.String(),
			DurationMS: run.Duration().Milliseconds(),
			Answer:     run.Answer,
		}
		if run.Error != nil {
			stmt.Error = run.Error.Error()
		}
		out.Statements = append(out.Statements, stmt)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	_, err = writer.Write([]byte("\n"))
	return err
}

// Name returns the name of this reporter
func (r *JSONReporter) Name() string {
	return "json"
}
