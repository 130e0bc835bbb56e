// Package chart generates SVG charts for the dashboard.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator — Pure Go, Zero Dependencies
// ════════════════════════════════════════════════════════════════════

// Config holds rendering parameters for SVG charts.
type Config struct {
	Width        int    // SVG width in pixels (default: 900)
	Height       int    // SVG height in pixels (default: 420)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 150, leaves room for the legend)
	MarginBottom int    // bottom margin (default: 60)
	MarginLeft   int    // left margin (default: 70)
	BgColor      string // background color (default: "#ffffff")
	GridColor    string // grid line color (default: "#e8e8e8")
	TextColor    string // axis label color (default: "#333333")
	FontSize     int    // axis label font size (default: 11)
	Title        string // chart title
	YLabel       string // Y-axis unit label, e.g. "$ Billions"
}

// DefaultConfig returns sensible defaults for chart rendering.
func DefaultConfig() Config {
	return Config{
		Width:        900,
		Height:       420,
		MarginTop:    40,
		MarginRight:  150,
		MarginBottom: 60,
		MarginLeft:   70,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c Config) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// Series is one named band of a stacked-area chart.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// ════════════════════════════════════════════════════════════════════
// Stacked Area Chart
// ════════════════════════════════════════════════════════════════════

// StackedArea generates an SVG stacked-area chart. Series are stacked in
// the order given, bottom first; all-zero series are dropped. Labels are
// the period labels for the X axis, one per data point.
func StackedArea(series []Series, labels []string, cfg Config) string {
	if cfg.Width == 0 {
		cfg = DefaultConfig()
	}
	series = dropEmptySeries(series)
	n := len(labels)
	if len(series) == 0 || n == 0 {
		return emptySVG(cfg, "No data available")
	}
	if n == 1 {
		// A single period has no area to stretch; render it as a message
		// rather than a degenerate sliver.
		return emptySVG(cfg, "Not enough periods to chart")
	}

	px, py, pw, ph := cfg.plotArea()

	// Cumulative stack totals per point determine the Y range.
	stacked := cumulative(series, n)
	maxVal := 0.0
	for _, v := range stacked[len(stacked)-1] {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return emptySVG(cfg, "No data available")
	}
	maxVal *= 1.05

	xAt := func(i int) float64 {
		return float64(px) + float64(i)*float64(pw)/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v/maxVal)*float64(ph)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))

	// Y-axis grid and labels
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := maxVal * float64(i) / float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, formatAxisValue(val)))
	}
	if cfg.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="15" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,15,%d)">%s</text>`,
			py+ph/2, cfg.FontSize, cfg.TextColor, py+ph/2, escapeXML(cfg.YLabel)))
	}

	// Vertical guide line per period
	for i := 0; i < n; i++ {
		x := xAt(i)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="2,4"/>`,
			x, py, x, py+ph, cfg.GridColor))
	}

	// Bands, bottom series first. Each band is the polygon between the
	// previous cumulative line and this one.
	for si := range series {
		var lower []float64
		if si == 0 {
			lower = make([]float64, n)
		} else {
			lower = stacked[si-1]
		}
		upper := stacked[si]

		var path strings.Builder
		for i := 0; i < n; i++ {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.1f,%.1f ", cmd, xAt(i), yAt(upper[i]))
		}
		for i := n - 1; i >= 0; i-- {
			fmt.Fprintf(&path, "L%.1f,%.1f ", xAt(i), yAt(lower[i]))
		}
		path.WriteString("Z")

		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-opacity="0.85" stroke="%s" stroke-width="0.5"/>`,
			strings.TrimSpace(path.String()), series[si].Color, series[si].Color))
	}

	// Legend, top to bottom mirrors stack order top band first.
	lx := px + pw + 15
	for i := len(series) - 1; i >= 0; i-- {
		ly := py + 10 + (len(series)-1-i)*18
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`,
			lx, ly, series[i].Color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			lx+17, ly+10, cfg.TextColor, escapeXML(series[i].Name)))
	}

	// X-axis labels, rotated, thinned to roughly eight
	interval := n / 8
	if interval < 1 {
		interval = 1
	}
	for i := 0; i < n; i += interval {
		x := xAt(i)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-45,%.1f,%d)">%s</text>`,
			x, py+ph+15, cfg.FontSize-1, cfg.TextColor, x, py+ph+15, escapeXML(labels[i])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// cumulative returns running stack totals: cumulative[k][i] is the sum of
// series 0..k at point i. Short series are treated as zero-padded.
func cumulative(series []Series, n int) [][]float64 {
	out := make([][]float64, len(series))
	prev := make([]float64, n)
	for k, s := range series {
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			v := 0.0
			if i < len(s.Values) && !math.IsNaN(s.Values[i]) {
				v = s.Values[i]
			}
			row[i] = prev[i] + v
		}
		out[k] = row
		prev = row
	}
	return out
}

// dropEmptySeries removes series whose values are all zero or missing.
func dropEmptySeries(series []Series) []Series {
	kept := series[:0:0]
	for _, s := range series {
		for _, v := range s.Values {
			if v != 0 && !math.IsNaN(v) {
				kept = append(kept, s)
				break
			}
		}
	}
	return kept
}

// formatAxisValue renders a Y-axis tick: whole numbers for large values,
// one decimal otherwise.
func formatAxisValue(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg Config) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg Config, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
