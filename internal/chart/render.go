// Package chart renders the wishlist history series as a chart image. The
// chart page is generated as self-contained HTML with an inline SVG and then
// screenshotted with headless Chromium.
package chart

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"swcal/internal/history"
)

// Gruvbox-ish palette for the rendered charts.
const (
	colorBackground = "#32302F"
	colorForeground = "#EBDBB2"
	colorTotal      = "#FB4934"
	colorPrerelease = "#B8BB26"
	colorReleased   = "#8EC07C"
	colorUnreleased = "#D3869B"
	colorGrid       = "#A89984"
	colorLabel      = "#FABD2F"
)

const (
	svgWidth   = 1200
	svgHeight  = 640
	svgPadding = 60
)

var pageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { background: {{.Background}}; color: {{.Foreground}}; font-family: sans-serif; margin: 24px; }
h1 { color: {{.Label}}; font-size: 22px; }
.legend span { margin-right: 18px; font-size: 14px; }
.swatch { display: inline-block; width: 12px; height: 12px; margin-right: 6px; }
.runtime { color: {{.Foreground}}; font-size: 12px; }
text { fill: {{.Label}}; font-size: 13px; }
</style>
</head>
<body data-ready="true">
<h1>Wishlist History</h1>
<div class="legend">
<span><i class="swatch" style="background:{{.TotalColor}}"></i>total</span>
<span><i class="swatch" style="background:{{.PrereleaseColor}}"></i>prerelease</span>
</div>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
{{range .GridLines}}<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{$.GridColor}}" stroke-dasharray="4 4" stroke-width="1"/>
{{end}}<polyline fill="none" stroke="{{.TotalColor}}" stroke-width="2" points="{{.TotalPoints}}"/>
<polyline fill="none" stroke="{{.PrereleaseColor}}" stroke-width="2" points="{{.PrereleasePoints}}"/>
<text x="8" y="{{.TopLabelY}}">{{.MaxY}}</text>
<text x="8" y="{{.BottomLabelY}}">0</text>
<text x="{{.FirstDayX}}" y="{{.DayLabelY}}">{{.FirstDay}}</text>
<text x="{{.LastDayX}}" y="{{.DayLabelY}}" text-anchor="end">{{.LastDay}}</text>
</svg>
<p class="runtime">Last run: {{.GeneratedAt}} UTC</p>
</body>
</html>
`))

type gridLine struct {
	X1, Y1, X2, Y2 int
}

type pageData struct {
	Background      string
	Foreground      string
	Label           string
	GridColor       string
	TotalColor      string
	PrereleaseColor string

	Width, Height          int
	TotalPoints            string
	PrereleasePoints       string
	GridLines              []gridLine
	MaxY                   int
	TopLabelY, BottomLabelY int
	FirstDay, LastDay      string
	FirstDayX, LastDayX    int
	DayLabelY              int
	GeneratedAt            string
}

// RenderHTML builds the chart page for the given series. The series must be
// non-empty.
func RenderHTML(s *history.Series, now time.Time) (string, error) {
	points := s.Points()
	if len(points) == 0 {
		return "", fmt.Errorf("chart: empty history series")
	}

	maxY := 1
	for _, p := range points {
		if p.Total > maxY {
			maxY = p.Total
		}
		if p.Prerelease > maxY {
			maxY = p.Prerelease
		}
	}

	plotW := svgWidth - 2*svgPadding
	plotH := svgHeight - 2*svgPadding
	span := len(points) - 1
	if span == 0 {
		span = 1
	}

	x := func(i int) int { return svgPadding + i*plotW/span }
	y := func(v int) int { return svgPadding + plotH - v*plotH/maxY }

	var total, prerelease strings.Builder
	for i, p := range points {
		if i > 0 {
			total.WriteByte(' ')
			prerelease.WriteByte(' ')
		}
		fmt.Fprintf(&total, "%d,%d", x(i), y(p.Total))
		fmt.Fprintf(&prerelease, "%d,%d", x(i), y(p.Prerelease))
	}

	grid := make([]gridLine, 0, 5)
	for i := 0; i <= 4; i++ {
		gy := svgPadding + i*plotH/4
		grid = append(grid, gridLine{X1: svgPadding, Y1: gy, X2: svgPadding + plotW, Y2: gy})
	}

	data := pageData{
		Background:      colorBackground,
		Foreground:      colorForeground,
		Label:           colorLabel,
		GridColor:       colorGrid,
		TotalColor:      colorTotal,
		PrereleaseColor: colorPrerelease,

		Width:            svgWidth,
		Height:           svgHeight,
		TotalPoints:      total.String(),
		PrereleasePoints: prerelease.String(),
		GridLines:        grid,
		MaxY:             maxY,
		TopLabelY:        svgPadding + 4,
		BottomLabelY:     svgPadding + plotH + 4,
		FirstDay:         points[0].Day,
		LastDay:          points[len(points)-1].Day,
		FirstDayX:        svgPadding,
		LastDayX:         svgPadding + plotW,
		DayLabelY:        svgPadding + plotH + 24,
		GeneratedAt:      now.UTC().Format("2006-01-02 15:04:05"),
	}

	var out strings.Builder
	if err := pageTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("chart: render template: %w", err)
	}
	return out.String(), nil
}

var stackTemplate = template.Must(template.New("stack").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { background: {{.Background}}; color: {{.Foreground}}; font-family: sans-serif; margin: 24px; }
h1 { color: {{.Label}}; font-size: 22px; }
.legend span { margin-right: 18px; font-size: 14px; }
.swatch { display: inline-block; width: 12px; height: 12px; margin-right: 6px; }
.runtime { color: {{.Foreground}}; font-size: 12px; }
text { fill: {{.Label}}; font-size: 13px; }
</style>
</head>
<body data-ready="true">
<h1>Wishlist History - Stack Plot</h1>
<div class="legend">
<span><i class="swatch" style="background:{{.ReleasedColor}}"></i>released</span>
<span><i class="swatch" style="background:{{.PrereleaseColor}}"></i>prerelease</span>
</div>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<polygon fill="{{.ReleasedColor}}" points="{{.ReleasedArea}}"/>
<polygon fill="{{.PrereleaseColor}}" points="{{.PrereleaseArea}}"/>
{{range .GridLines}}<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{$.GridColor}}" stroke-dasharray="4 4" stroke-width="1"/>
{{end}}<text x="8" y="{{.TopLabelY}}">{{.MaxY}}</text>
<text x="8" y="{{.BottomLabelY}}">0</text>
<text x="{{.FirstDayX}}" y="{{.DayLabelY}}">{{.FirstDay}}</text>
<text x="{{.LastDayX}}" y="{{.DayLabelY}}" text-anchor="end">{{.LastDay}}</text>
</svg>
<p class="runtime">Last run: {{.GeneratedAt}} UTC</p>
</body>
</html>
`))

type stackData struct {
	Background      string
	Foreground      string
	Label           string
	GridColor       string
	ReleasedColor   string
	PrereleaseColor string

	Width, Height           int
	ReleasedArea            string
	PrereleaseArea          string
	GridLines               []gridLine
	MaxY                    int
	TopLabelY, BottomLabelY int
	FirstDay, LastDay       string
	FirstDayX, LastDayX     int
	DayLabelY               int
	GeneratedAt             string
}

// RenderStackHTML builds the stacked-area page for the given series: the
// released slice of the wishlist at the bottom, prerelease items stacked on
// top so the upper edge traces the total. The series must be non-empty.
func RenderStackHTML(s *history.Series, now time.Time) (string, error) {
	points := s.Points()
	if len(points) == 0 {
		return "", fmt.Errorf("chart: empty history series")
	}

	maxY := 1
	for _, p := range points {
		if p.Total > maxY {
			maxY = p.Total
		}
	}

	plotW := svgWidth - 2*svgPadding
	plotH := svgHeight - 2*svgPadding
	span := len(points) - 1
	if span == 0 {
		span = 1
	}

	x := func(i int) int { return svgPadding + i*plotW/span }
	y := func(v int) int { return svgPadding + plotH - v*plotH/maxY }

	// Each layer is a closed polygon: forward along its upper edge, then
	// back along its lower edge.
	var released, prerelease strings.Builder
	for i, p := range points {
		if i > 0 {
			released.WriteByte(' ')
			prerelease.WriteByte(' ')
		}
		fmt.Fprintf(&released, "%d,%d", x(i), y(p.Total-p.Prerelease))
		fmt.Fprintf(&prerelease, "%d,%d", x(i), y(p.Total))
	}
	for i := len(points) - 1; i >= 0; i-- {
		fmt.Fprintf(&released, " %d,%d", x(i), y(0))
		fmt.Fprintf(&prerelease, " %d,%d", x(i), y(points[i].Total-points[i].Prerelease))
	}

	grid := make([]gridLine, 0, 5)
	for i := 0; i <= 4; i++ {
		gy := svgPadding + i*plotH/4
		grid = append(grid, gridLine{X1: svgPadding, Y1: gy, X2: svgPadding + plotW, Y2: gy})
	}

	data := stackData{
		Background:      colorBackground,
		Foreground:      colorForeground,
		Label:           colorLabel,
		GridColor:       colorGrid,
		ReleasedColor:   colorReleased,
		PrereleaseColor: colorUnreleased,

		Width:          svgWidth,
		Height:         svgHeight,
		ReleasedArea:   released.String(),
		PrereleaseArea: prerelease.String(),
		GridLines:      grid,
		MaxY:           maxY,
		TopLabelY:      svgPadding + 4,
		BottomLabelY:   svgPadding + plotH + 4,
		FirstDay:       points[0].Day,
		LastDay:        points[len(points)-1].Day,
		FirstDayX:      svgPadding,
		LastDayX:       svgPadding + plotW,
		DayLabelY:      svgPadding + plotH + 24,
		GeneratedAt:    now.UTC().Format("2006-01-02 15:04:05"),
	}

	var out strings.Builder
	if err := stackTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("chart: render stack template: %w", err)
	}
	return out.String(), nil
}
