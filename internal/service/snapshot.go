package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Snapshotter renders a preview document in headless Chrome and captures
// it as a screenshot or PDF
type Snapshotter struct {
	chromePath string
}

func NewSnapshotter(chromePath string) *Snapshotter {
	return &Snapshotter{chromePath: chromePath}
}

func (s *Snapshotter) run(ctx context.Context, html string, action func(context.Context) error) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, 60*time.Second)
	defer cancelRun()

	// Serve the document from a temp file so relative CDN fetches and the
	// in-page Babel pass behave the same as in a browser tab
	tmpDir, err := os.MkdirTemp("", "foliogen-preview-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing preview document: %w", err)
	}

	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Give the CDN runtimes and the client-side transform a moment
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(action),
	)
	if err != nil {
		return fmt.Errorf("rendering preview in Chrome: %w", err)
	}
	return nil
}

// Screenshot captures a full-page PNG of the preview document
func (s *Snapshotter) Screenshot(ctx context.Context, html string) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, html, func(ctx context.Context) error {
		return chromedp.FullScreenshot(&buf, 90).Do(ctx)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// PDF captures the preview document as an A4 PDF
func (s *Snapshotter) PDF(ctx context.Context, html string) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, html, func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}
