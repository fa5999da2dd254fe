package export

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 portrait in inches.
const (
	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// DefaultTimeout bounds a single export attempt.
const DefaultTimeout = 60 * time.Second

// Printer turns a complete HTML page into PDF bytes.
type Printer func(ctx context.Context, html string) ([]byte, error)

// Options configures a PDFExporter.
type Options struct {
	Timeout time.Duration
	// NoSandbox disables the Chrome sandbox, needed when running as root
	// inside containers.
	NoSandbox bool
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
	Logger   *zap.Logger
	// Printer replaces the headless Chrome printer.
	Printer Printer
}

// PDFExporter prints HTML pages to A4 PDF. Only one export runs at a time.
type PDFExporter struct {
	opts   Options
	logger *zap.Logger
	print  Printer
	busy   atomic.Bool
}

// NewPDFExporter creates an exporter. Zero options select headless Chrome
// with DefaultTimeout.
func NewPDFExporter(opts Options) *PDFExporter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &PDFExporter{opts: opts, logger: logger}
	e.print = opts.Printer
	if e.print == nil {
		e.print = e.printWithChrome
	}
	return e
}

// Busy reports whether an export is currently running.
func (e *PDFExporter) Busy() bool {
	return e.busy.Load()
}

// Export prints html to PDF. A call made while another export is running
// fails immediately with ErrExportInProgress. There is no retry.
func (e *PDFExporter) Export(ctx context.Context, html string) ([]byte, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.busy.Store(false)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	pdf, err := e.print(ctx, html)
	if err != nil {
		e.logger.Warn("pdf export failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &ExportError{Message: "printing page", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &ExportError{Message: "printer returned an empty document"}
	}

	e.logger.Info("pdf exported",
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}

// WriteFile exports html and stores it in dir under Filename(fullName).
// It returns the path of the written file.
func (e *PDFExporter) WriteFile(ctx context.Context, html, dir, fullName string) (string, error) {
	pdf, err := e.Export(ctx, html)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &ExportError{Message: "creating output directory", Cause: err}
	}
	path := filepath.Join(dir, Filename(fullName))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return "", &ExportError{Message: "writing " + path, Cause: err}
	}
	return path, nil
}

// printWithChrome loads html into a blank tab of a fresh headless browser
// and prints it with zero margins and backgrounds enabled.
func (e *PDFExporter) printWithChrome(ctx context.Context, html string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}
	if e.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(e.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var (
		ready bool
		pdf   []byte
	)
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Remote profile photos must finish loading before printing.
		chromedp.Poll(`document.readyState === "complete"`, &ready,
			chromedp.WithPollingInterval(50*time.Millisecond)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(PaperWidthInches).
				WithPaperHeight(PaperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
