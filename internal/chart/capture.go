package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultCaptureWidth  = 1280
	defaultCaptureHeight = 800
	defaultTimeoutSec    = 30
)

// CaptureOptions defines parameters for a Chromium-based screenshot capture.
type CaptureOptions struct {
	// Width and Height are the viewport dimensions in pixels. If zero,
	// sensible defaults are used.
	Width  int
	Height int

	// Timeout bounds the entire capture operation.
	Timeout time.Duration
}

// Capture launches a headless Chromium instance via chromedp, navigates to
// the chart page at htmlPath, waits for the page to signal readiness via
// its data-ready attribute, and writes a PNG screenshot to pngPath.
func Capture(parentCtx context.Context, htmlPath, pngPath string, opts CaptureOptions) error {
	if htmlPath == "" {
		return fmt.Errorf("chart: htmlPath is required")
	}
	if pngPath == "" {
		return fmt.Errorf("chart: pngPath is required")
	}
	if opts.Width <= 0 {
		opts.Width = defaultCaptureWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultCaptureHeight
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeoutSec * time.Second
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("chart: resolve html path: %w", err)
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate("file://" + abs),
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("chart: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(pngPath, png, 0o644); err != nil {
		return fmt.Errorf("chart: failed to write PNG: %w", err)
	}

	return nil
}
