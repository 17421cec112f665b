package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPrintTimeout bounds a single HTML to PDF conversion.
const DefaultPrintTimeout = 60 * time.Second

// PDFPrinter converts an HTML document to PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromedpPrinter prints HTML through a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromedpPrinter struct {
	ExecPath string // optional Chrome binary
	Timeout  time.Duration
}

// PrintPDF loads html into a blank page and prints it on A4 paper.
func (p *ChromedpPrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
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
			// A4: 210mm x 297mm
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Format: FormatPDF, Message: "pdf printing failed", Cause: err}
	}
	return pdf, nil
}
