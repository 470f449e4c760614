// Package pipeline runs one fetch-classify-emit cycle of the wishlist
// calendar.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"swcal/internal/chart"
	"swcal/internal/classify"
	"swcal/internal/config"
	"swcal/internal/feed"
	"swcal/internal/history"
	appLog "swcal/internal/log"
	"swcal/internal/model"
	"swcal/internal/release"
	"swcal/internal/report"
	"swcal/internal/steam"
)

// Output artifact file names inside the configured output directory.
const (
	FileCalendar  = "wishlist.ics"
	FileSuccess   = "successful.txt"
	FileFailures  = "failed_deductions.txt"
	FileHistory   = "history.json"
	FileChartHTML = "wishlist_history_chart.html"
	FileChartPNG  = "wishlist_history_chart.png"
	FileStackHTML = "wishlist_history_stack_plot.html"
	FileStackPNG  = "wishlist_history_stack_plot.png"
)

// WishlistSource supplies the raw wishlist items for an account.
type WishlistSource interface {
	Fetch(ctx context.Context, account string, maxPages int) ([]model.WishlistItem, error)
}

// Pipeline owns one configured run cycle.
type Pipeline struct {
	cfg    *config.Config
	source WishlistSource
}

// New creates a pipeline backed by the storefront API.
func New(cfg *config.Config) *Pipeline {
	return NewWithSource(cfg, steam.NewClient(steam.ClientOptions{
		Locale:    cfg.Locale,
		PageDelay: time.Duration(cfg.PageDelaySeconds) * time.Second,
	}))
}

// NewWithSource creates a pipeline with an explicit wishlist source.
func NewWithSource(cfg *config.Config, source WishlistSource) *Pipeline {
	return &Pipeline{cfg: cfg, source: source}
}

// Run executes a single cycle as of now: fetch the wishlist, classify every
// item, then write calendar, reports, history and chart.
//
// The fetch completes before any file is touched, so a fetch failure leaves
// no partial or stale artifacts behind.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	cfg := p.cfg

	items, err := p.source.Fetch(ctx, cfg.Account, cfg.MaxPages)
	if err != nil {
		return err
	}

	filtered := classify.Filter(items, cfg.IncludeDLC)
	normalizer := release.New(cfg.ExtraNoDatePhrases...)
	res := classify.Classify(filtered, now, normalizer)

	appLog.Info("wishlist classified",
		"total", len(filtered),
		"dated", len(res.Successful),
		"unresolved", len(res.Failed),
	)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("pipeline: create output dir: %w", err)
	}

	entries := feed.Build(res.Successful, now, feed.Options{
		IncludeReleased: cfg.Calendar.IncludeReleased,
	})
	ics := feed.Calendar(entries, now)
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, FileCalendar), []byte(ics), 0o644); err != nil {
		return fmt.Errorf("pipeline: write calendar: %w", err)
	}

	if err := report.WriteSuccess(filepath.Join(cfg.OutputDir, FileSuccess), res.Successful); err != nil {
		return fmt.Errorf("pipeline: write success report: %w", err)
	}
	if err := report.WriteFailures(filepath.Join(cfg.OutputDir, FileFailures), res.Failed); err != nil {
		return fmt.Errorf("pipeline: write failure report: %w", err)
	}

	historyPath := filepath.Join(cfg.OutputDir, FileHistory)
	series := history.Load(historyPath)
	series.Upsert(history.Aggregate(res, now))
	if err := history.Save(historyPath, series); err != nil {
		return fmt.Errorf("pipeline: save history: %w", err)
	}

	if !cfg.Chart.Disabled && series.Len() > 0 {
		charts := []struct {
			render   func(*history.Series, time.Time) (string, error)
			html, png string
		}{
			{chart.RenderHTML, FileChartHTML, FileChartPNG},
			{chart.RenderStackHTML, FileStackHTML, FileStackPNG},
		}
		for _, c := range charts {
			html, err := c.render(series, now)
			if err != nil {
				return err
			}
			htmlPath := filepath.Join(cfg.OutputDir, c.html)
			if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
				return fmt.Errorf("pipeline: write chart page: %w", err)
			}
			pngPath := filepath.Join(cfg.OutputDir, c.png)
			if err := chart.Capture(ctx, htmlPath, pngPath, chart.CaptureOptions{}); err != nil {
				return err
			}
		}
	}

	appLog.Info("run complete",
		"calendar_entries", len(entries),
		"history_points", series.Len(),
		"output_dir", cfg.OutputDir,
	)
	return nil
}
