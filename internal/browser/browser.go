// Package browser captures rendered HTML pages with a headless Chrome.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/enix403/gen-sql-pdf/internal/logger"
)

const (
	DefaultWidth   = 1892
	DefaultHeight  = 2054
	DefaultQuality = 100
)

// Options configures the browser
type Options struct {
	ExecPath string // Empty means let chromedp find Chrome
	Width    int
	Height   int
	Quality  int // JPEG quality 1-100
}

// Browser is a running headless Chrome. Capture may be called concurrently;
// every call uses its own tab.
type Browser struct {
	opts          Options
	ctx           context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
}

// Launch starts Chrome and waits until it is ready
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(opts.Width, opts.Height),
		chromedp.Flag("hide-scrollbars", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debug),
		chromedp.WithErrorf(logger.Error),
	)

	// The first Run on a fresh context starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	logger.Debug("Browser started (%dx%d)", opts.Width, opts.Height)

	return &Browser{
		opts:          opts,
		ctx:           browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
	}, nil
}

// Capture loads html into a new tab and returns a screenshot of the viewport
func (b *Browser) Capture(ctx context.Context, html string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.ctx)
	defer cancelTab()

	// Tie the tab to the caller's deadline as well as the browser's lifetime
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var image []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(b.opts.Width), int64(b.opts.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			image, err = b.screenshot().Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	return image, nil
}

func (b *Browser) screenshot() *page.CaptureScreenshotParams {
	return page.CaptureScreenshot().
		WithFormat(page.CaptureScreenshotFormatJpeg).
		WithQuality(int64(b.opts.Quality)).
		WithFromSurface(true)
}

// Close shuts down the browser
func (b *Browser) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}
