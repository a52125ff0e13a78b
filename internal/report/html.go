package report

import (
	"context"
	"io"

	"github.com/enix403/gen-sql-pdf/internal/runner"
)

// HTMLReporter writes all statements into one HTML document
type HTMLReporter struct {
	opts Options
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{opts: opts}
}

// Format writes the runs as a single HTML document
func (r *HTMLReporter) Format(ctx context.Context, runs []*runner.StatementRun, writer io.Writer) error {
	return r.opts.Renderer.Document(writer, runs, r.opts.Title, r.opts.RunID)
}

// Name returns the name of this reporter
func (r *HTMLReporter) Name() string {
	return "html"
}
