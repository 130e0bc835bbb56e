package chart

import (
	"strings"
	"testing"
)

func sampleSeries() []Series {
	return []Series{
		{Name: "Up to 1Y", Values: []float64{10, 20, 15}, Color: "#3288bd"},
		{Name: "10Y+", Values: []float64{5, 5, 10}, Color: "#d53e4f"},
	}
}

func TestStackedAreaBasic(t *testing.T) {
	svg := StackedArea(sampleSeries(), []string{"2024-01", "2024-02", "2024-03"}, Config{})
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("output is not a complete SVG document")
	}
	for _, want := range []string{"#3288bd", "#d53e4f", "Up to 1Y", "10Y+", "2024-01"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	// One filled band path per series.
	if got := strings.Count(svg, `fill-opacity="0.85"`); got != 2 {
		t.Errorf("band paths: got %d, want 2", got)
	}
}

func TestStackedAreaTitleEscaped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = `Issuance <mix> & "shares"`
	svg := StackedArea(sampleSeries(), []string{"a", "b", "c"}, cfg)
	if strings.Contains(svg, "<mix>") {
		t.Error("title not XML-escaped")
	}
	if !strings.Contains(svg, "&lt;mix&gt; &amp; &quot;shares&quot;") {
		t.Error("escaped title missing")
	}
}

func TestStackedAreaDropsAllZeroSeries(t *testing.T) {
	series := append(sampleSeries(), Series{
		Name: "Other", Values: []float64{0, 0, 0}, Color: "#cccccc",
	})
	svg := StackedArea(series, []string{"a", "b", "c"}, Config{})
	if strings.Contains(svg, "Other") {
		t.Error("all-zero series should be omitted")
	}
}

func TestStackedAreaNoData(t *testing.T) {
	svg := StackedArea(nil, nil, Config{})
	if !strings.Contains(svg, "No data available") {
		t.Error("expected empty-state SVG")
	}

	svg = StackedArea([]Series{{Name: "x", Values: []float64{0, 0}, Color: "#000"}}, []string{"a", "b"}, Config{})
	if !strings.Contains(svg, "No data available") {
		t.Error("all-zero input should produce empty-state SVG")
	}
}

func TestStackedAreaSinglePeriod(t *testing.T) {
	svg := StackedArea([]Series{{Name: "x", Values: []float64{5}, Color: "#000"}}, []string{"a"}, Config{})
	if !strings.Contains(svg, "Not enough periods") {
		t.Error("single period should produce message SVG")
	}
}

func TestStackedAreaYAxisLabel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YLabel = "$ Billions"
	svg := StackedArea(sampleSeries(), []string{"a", "b", "c"}, cfg)
	if !strings.Contains(svg, "$ Billions") {
		t.Error("Y-axis label missing")
	}
}

func TestCumulativeStacks(t *testing.T) {
	stacked := cumulative(sampleSeries(), 3)
	if len(stacked) != 2 {
		t.Fatalf("stacks: got %d", len(stacked))
	}
	if stacked[0][1] != 20 {
		t.Errorf("first stack at point 1: got %f, want 20", stacked[0][1])
	}
	if stacked[1][1] != 25 {
		t.Errorf("second stack at point 1: got %f, want 25", stacked[1][1])
	}
}

func TestCumulativePadsShortSeries(t *testing.T) {
	series := []Series{{Name: "short", Values: []float64{1}, Color: "#000"}}
	stacked := cumulative(series, 3)
	if stacked[0][2] != 0 {
		t.Errorf("missing points should read as zero, got %f", stacked[0][2])
	}
}

func TestFormatAxisValue(t *testing.T) {
	if got := formatAxisValue(250); got != "250" {
		t.Errorf("formatAxisValue(250): got %q", got)
	}
	if got := formatAxisValue(12.34); got != "12.3" {
		t.Errorf("formatAxisValue(12.34): got %q", got)
	}
}
