package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/enix403/gen-sql-pdf/internal/errors"
	"github.com/enix403/gen-sql-pdf/internal/logger"
	"github.com/enix403/gen-sql-pdf/internal/runner"
	"github.com/go-pdf/fpdf"
)

// pageMargin is the margin around each page image, in millimetres
const pageMargin = 10.0

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// PDFReporter screenshots one page per statement and binds them into a PDF
type PDFReporter struct {
	opts Options
}

// NewPDFReporter creates a new PDF reporter
func NewPDFReporter(opts Options) *PDFReporter {
	return &PDFReporter{opts: opts}
}

// Format captures every run and writes the PDF. Captures run concurrently,
// pages are always laid out in statement order.
func (r *PDFReporter) Format(ctx context.Context, runs []*runner.StatementRun, writer io.Writer) error {
	images, err := r.capture(ctx, runs)
	if err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(r.opts.Title, true)
	doc.SetSubject(r.opts.RunID, true)
	doc.SetCreator("sqlpdf", true)

	for i, image := range images {
		if err := r.addPage(doc, fmt.Sprintf("%s-%d", r.opts.RunID, i+1), image); err != nil {
			return errors.NewRenderError(runs[i].Statement.Index, err.Error())
		}
	}

	if err := doc.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (r *PDFReporter) capture(ctx context.Context, runs []*runner.StatementRun) ([][]byte, error) {
	images := make([][]byte, len(runs))
	var done int32

	pool := runner.NewWorkerPool(r.opts.Workers)
	err := pool.Run(ctx, len(runs), func(ctx context.Context, i int) error {
		html, err := r.opts.Renderer.Page(runs[i])
		if err != nil {
			return err
		}

		image, err := r.opts.Capturer.Capture(ctx, html)
		if err != nil {
			return errors.NewCaptureError(runs[i].Statement.Index, err)
		}
		images[i] = image

		logger.Progress("statement", int(atomic.AddInt32(&done, 1)), len(runs))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}

// addPage places image on a new page, scaled to fit inside the margins and
// centred horizontally.
func (r *PDFReporter) addPage(doc *fpdf.Fpdf, name string, image []byte) error {
	doc.AddPage()

	opt := fpdf.ImageOptions{ImageType: imageType(image)}
	info := doc.RegisterImageOptionsReader(name, opt, bytes.NewReader(image))
	if doc.Err() {
		return doc.Error()
	}

	pageW, pageH := doc.GetPageSize()
	availW := pageW - 2*pageMargin
	availH := pageH - 2*pageMargin

	scale := availW / info.Width()
	if h := info.Height() * scale; h > availH {
		scale = availH / info.Height()
	}
	w := info.Width() * scale
	h := info.Height() * scale

	doc.ImageOptions(name, (pageW-w)/2, pageMargin, w, h, false, opt, 0, "")
	if doc.Err() {
		return doc.Error()
	}
	return nil
}

func imageType(image []byte) string {
	if bytes.HasPrefix(image, pngMagic) {
		return "PNG"
	}
	return "JPG"
}
