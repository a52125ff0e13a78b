package report

import (
	"context"
	"fmt"
	"io"

	"github.com/enix403/gen-sql-pdf/internal/render"
	"github.com/enix403/gen-sql-pdf/internal/runner"
)

// DefaultTitle is used when no document title is configured
const DefaultTitle = "SQL Report"

// Formatter writes statement runs in one output format
type Formatter interface {
	// Format writes the runs, in order, to the writer
	Format(ctx context.Context, runs []*runner.StatementRun, writer io.Writer) error

	// Name returns the name of this formatter
	Name() string
}

// Capturer turns a rendered HTML page into an image
type Capturer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// Options carries what the formatters need besides the runs
type Options struct {
	Renderer *render.Renderer
	Capturer Capturer // Only needed by the pdf format
	Workers  int      // Concurrent page captures
	Title    string
	RunID    string
}

// FormatType represents supported report formats
type FormatType string

const (
	FormatPDF  FormatType = "pdf"
	FormatHTML FormatType = "html"
	FormatJSON FormatType = "json"
)

// NeedsBrowser reports whether the format captures pages with a browser
func (f FormatType) NeedsBrowser() bool {
	return f == FormatPDF
}

// GetFormatter returns a formatter for the specified format type
func GetFormatter(format FormatType, opts Options) (Formatter, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	switch format {
	case FormatPDF:
		if opts.Renderer == nil || opts.Capturer == nil {
			return nil, fmt.Errorf("pdf format needs a renderer and a capturer")
		}
		return NewPDFReporter(opts), nil
	case FormatHTML:
		if opts.Renderer == nil {
			return nil, fmt.Errorf("html format needs a renderer")
		}
		return NewHTMLReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: pdf, html, json)", format)
	}
}

// ValidFormat checks if a format string is valid
func ValidFormat(format string) bool {
	switch FormatType(format) {
	case FormatPDF, FormatHTML, FormatJSON:
		return true
	default:
		return false
	}
}

// SupportedFormats returns a list of supported format names
func SupportedFormats() []string {
	return []string{string(FormatPDF), string(FormatHTML), string(FormatJSON)}
}
