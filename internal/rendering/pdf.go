package rendering

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Letter paper in inches.
const (
	letterWidth  = 8.5
	letterHeight = 11.0
)

// DefaultPDFTimeout bounds one print job, browser start-up included.
const DefaultPDFTimeout = 60 * time.Second

// ChromePDF prints HTML to PDF with a headless Chrome. Each call starts its
// own browser, so a ChromePDF is safe for concurrent use.
type ChromePDF struct {
	// ExecPath is the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromePDF returns a printer using the given Chrome binary.
func NewChromePDF(execPath string, verbose bool) *ChromePDF {
	return &ChromePDF{ExecPath: execPath, Timeout: DefaultPDFTimeout, Verbose: verbose}
}

// RenderPDF loads html into a blank page and prints it.
func (c *ChromePDF) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if c.Verbose {
		log.Printf("[render] starting headless browser for %d bytes of HTML", len(html))
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
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
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidth).
				WithPaperHeight(letterHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Format: "pdf", Message: "browser printing failed", Cause: err}
	}

	if c.Verbose {
		log.Printf("[render] printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}
