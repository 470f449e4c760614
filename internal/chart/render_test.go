package chart

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"swcal/internal/history"
	"swcal/internal/model"
)

func TestRenderHTML(t *testing.T) {
	var s history.Series
	s.Upsert(model.HistoryPoint{Day: "2024-05-30", Total: 10, Prerelease: 4})
	s.Upsert(model.HistoryPoint{Day: "2024-05-31", Total: 11, Prerelease: 4})
	s.Upsert(model.HistoryPoint{Day: "2024-06-01", Total: 11, Prerelease: 5})

	html, err := RenderHTML(&s, time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		`data-ready="true"`,
		"<polyline",
		colorTotal,
		colorPrerelease,
		"2024-05-30",
		"2024-06-01",
		"Last run: 2024-06-01 08:00:00 UTC",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("chart page missing %q", want)
		}
	}
}

func TestRenderStackHTML(t *testing.T) {
	var s history.Series
	s.Upsert(model.HistoryPoint{Day: "2024-05-30", Total: 10, Prerelease: 4})
	s.Upsert(model.HistoryPoint{Day: "2024-05-31", Total: 11, Prerelease: 4})
	s.Upsert(model.HistoryPoint{Day: "2024-06-01", Total: 11, Prerelease: 5})

	html, err := RenderStackHTML(&s, time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		`data-ready="true"`,
		"Stack Plot",
		"<polygon",
		colorReleased,
		colorUnreleased,
		"released",
		"prerelease",
		"2024-05-30",
		"2024-06-01",
		"Last run: 2024-06-01 08:00:00 UTC",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("stack plot page missing %q", want)
		}
	}
}

func TestRenderStackHTMLLayersSumToTotal(t *testing.T) {
	var s history.Series
	s.Upsert(model.HistoryPoint{Day: "2024-05-31", Total: 8, Prerelease: 3})
	s.Upsert(model.HistoryPoint{Day: "2024-06-01", Total: 10, Prerelease: 5})

	html, err := RenderStackHTML(&s, time.Now())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// With maxY=10 and a 520px plot the released layer tops out at y(5) on
	// both days, and the prerelease layer's upper edge reaches y(8) and
	// y(10). The layers must meet along the released edge.
	plotH := svgHeight - 2*svgPadding
	y := func(v int) int { return svgPadding + plotH - v*plotH/10 }
	releasedTop := fmt.Sprintf("%d,%d", svgPadding, y(5))
	totalTop := fmt.Sprintf("%d,%d", svgPadding+(svgWidth-2*svgPadding), y(10))
	if !strings.Contains(html, releasedTop) {
		t.Errorf("stack plot missing released edge point %s", releasedTop)
	}
	if !strings.Contains(html, totalTop) {
		t.Errorf("stack plot missing total edge point %s", totalTop)
	}
	if strings.Count(html, releasedTop) < 2 {
		t.Errorf("released edge %s should appear in both layers", releasedTop)
	}
}

func TestRenderStackHTMLEmptySeries(t *testing.T) {
	if _, err := RenderStackHTML(&history.Series{}, time.Now()); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestRenderHTMLSinglePoint(t *testing.T) {
	var s history.Series
	s.Upsert(model.HistoryPoint{Day: "2024-06-01", Total: 3, Prerelease: 1})

	if _, err := RenderHTML(&s, time.Now()); err != nil {
		t.Fatalf("single-point render failed: %v", err)
	}
}

func TestRenderHTMLEmptySeries(t *testing.T) {
	if _, err := RenderHTML(&history.Series{}, time.Now()); err == nil {
		t.Fatal("expected error for empty series")
	}
}
