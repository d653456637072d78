// Package export turns rendered CV pages into downloadable PDF files
// using a headless Chrome instance.
package export

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Ragbaje/FrameMe/internal/rendering"
)

const (
	// A4: 210mm x 297mm -> inches: 8.27 x 11.69
	paperWidthInches  = 8.27
	paperHeightInches = 11.69

	// A4 in CSS pixels at 96dpi, the space one printed page can hold.
	pageWidthPx  = 794
	pageHeightPx = 1123

	// Doubling the device scale keeps text crisp in the rasterized output.
	deviceScale = 2.0

	defaultTimeout = 60 * time.Second
)

// Exporter drives a headless Chrome to print CV pages. The zero value
// is usable; ChromePath overrides Chrome discovery when set.
type Exporter struct {
	ChromePath string
	Timeout    time.Duration
}

// NewExporter returns an exporter that launches the browser at
// chromePath, or lets chromedp locate one when chromePath is empty.
func NewExporter(chromePath string) *Exporter {
	return &Exporter{ChromePath: chromePath, Timeout: defaultTimeout}
}

// ExportPDF prints the HTML document to a single A4 PDF page. Content
// that runs past the first page is clipped with a logged warning
// rather than failing the export.
func (e *Exporter) ExportPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	} else if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	runCtx, cancelRun := context.WithTimeout(cctx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "frameme-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(pageWidthPx, pageHeightPx, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var contentHeight float64
			if err := chromedp.Evaluate("document.documentElement.scrollHeight", &contentHeight).Do(ctx); err != nil {
				return err
			}

			print := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPreferCSSPageSize(true)
			if Overflows(contentHeight) {
				log.Printf("CV content exceeds one A4 page (%d px > %d px), clipping to the first page", int(contentHeight), pageHeightPx)
				print = print.WithPageRanges("1")
			}

			var err error
			pdfBuf, _, err = print.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// Overflows reports whether content of the given height in CSS pixels
// runs past a single A4 page.
func Overflows(contentHeightPx float64) bool {
	return contentHeightPx > pageHeightPx
}

// Filename builds the download name for an exported CV. Whitespace
// runs in the full name collapse to single underscores.
func Filename(fullName string, variant rendering.Variant) string {
	name := strings.Join(strings.Fields(fullName), "_")
	return name + "_CV_" + string(variant) + ".pdf"
}
