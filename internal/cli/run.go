package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/browser"
	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/discovery"
	"github.com/enix403/gen-sql-pdf/internal/logger"
	"github.com/enix403/gen-sql-pdf/internal/parser"
	"github.com/enix403/gen-sql-pdf/internal/render"
	"github.com/enix403/gen-sql-pdf/internal/report"
	"github.com/enix403/gen-sql-pdf/internal/runner"
	"github.com/google/uuid"
)

// Run executes every statement of the input files and writes the report
func Run(ctx context.Context, config *Config, paths []string) (int, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger.Debug("Run %s: reading %v", runID, paths)

	// Step 1: Resolve input files
	files, err := discovery.Resolve(paths)
	if err != nil {
		return 1, err
	}
	if len(files) == 0 {
		logger.Info("No SQL files found (*.sql)")
		return 0, nil
	}
	for _, f := range files {
		if f.Type != discovery.FileTypeInput {
			logger.Debug("Reading %s although it has no .sql extension", f.RelativePath)
		}
	}

	// Step 2: Split into statements
	statements, err := parser.ParseBatch(files)
	if err != nil {
		return 1, err
	}
	if len(statements) == 0 {
		logger.Info("No statements found in %d file(s)", len(files))
		return 0, nil
	}
	logger.Debug("Found %d statement(s) in %d file(s)", len(statements), len(files))

	// Step 3: Connect
	querier, err := database.Open(ctx, config)
	if err != nil {
		return 1, fmt.Errorf("database connection failed: %w", err)
	}
	defer querier.Close()
	logger.Debug("Connected to %s database", querier.Dialect())

	// Step 4: Execute statements in order
	executor := runner.NewExecutor(querier, config.Timeout)
	runs, err := executor.ExecuteBatch(ctx, statements)
	if err != nil {
		return 1, fmt.Errorf("statement execution failed: %w", err)
	}

	// Step 5: Format the report
	formatter, cleanup, err := newFormatter(ctx, config, runID)
	if err != nil {
		return 1, err
	}
	defer cleanup()

	if err := writeOutput(ctx, config.Output, func(w io.Writer) error {
		return formatter.Format(ctx, runs, w)
	}); err != nil {
		return 1, fmt.Errorf("failed to write %s report: %w", formatter.Name(), err)
	}

	// Step 6: Display summary
	summary := runner.SummarizeRuns(runs)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Statements: %d succeeded, %d failed, %d timed out, %d total\n",
		summary.Succeeded, summary.Failed, summary.TimedOut, summary.Total)
	fmt.Fprintf(os.Stderr, "Time:       %v\n", time.Since(startTime).Round(time.Millisecond))
	if config.Output != "-" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", config.Output)
	}

	return summary.ExitCode(), nil
}

// newFormatter prepares the formatter for config.Format. The returned cleanup
// releases the browser when one was started.
func newFormatter(ctx context.Context, config *Config, runID string) (report.Formatter, func(), error) {
	format := report.FormatType(config.Format)
	opts := report.Options{
		Workers: config.Parallelism,
		Title:   config.Title,
		RunID:   runID,
	}
	cleanup := func() {}

	if format != report.FormatJSON {
		renderer, err := render.NewRenderer(config.Theme, config.ThemesDir, config.Width)
		if err != nil {
			return nil, nil, err
		}
		opts.Renderer = renderer
	}

	if format.NeedsBrowser() {
		b, err := browser.Launch(ctx, browser.Options{
			ExecPath: config.ChromePath,
			Width:    config.Width,
			Height:   config.Height,
			Quality:  config.Quality,
		})
		if err != nil {
			return nil, nil, err
		}
		opts.Capturer = b
		cleanup = func() { b.Close() }
	}

	formatter, err := report.GetFormatter(format, opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return formatter, cleanup, nil
}

// writeOutput calls write with the output destination. Files are written to a
// temporary sibling and renamed into place, so a failed run never leaves a
// truncated report behind.
func writeOutput(ctx context.Context, path string, write func(io.Writer) error) error {
	if path == "-" || path == "" {
		return write(os.Stdout)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
