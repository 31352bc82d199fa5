package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Fetching websites")
	if !strings.Contains(s.View(), "Fetching websites") {
		t.Errorf("View() = %q, want label", s.View())
	}

	if s.Init() == nil {
		t.Error("Init should return command")
	}

	if _, cmd := s.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading")
	view := RenderSpinnerCentered(s, 40, 5)
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func TestRenderLineChart(t *testing.T) {
	if got := RenderLineChart(nil, 40, 5, ""); !strings.Contains(got, NoDataText) {
		t.Errorf("empty chart = %q, want no-data text", got)
	}

	chart := RenderLineChart([]float64{1, 5, 3}, 40, 5, "Visits")
	if !strings.Contains(chart, "Visits") {
		t.Error("chart should carry its caption")
	}

	// A single point still draws
	if RenderLineChart([]float64{7}, 40, 5, "") == "" {
		t.Error("single point chart should render")
	}
}

func TestRenderAxisLabels(t *testing.T) {
	if RenderAxisLabels(nil, 40) != "" {
		t.Error("no labels should render nothing")
	}

	got := ansi.Strip(RenderAxisLabels([]string{"2024-01-01", "2024-01-02", "2024-01-03"}, 40))
	if !strings.HasPrefix(got, "2024-01-01") || !strings.HasSuffix(got, "2024-01-03") {
		t.Errorf("axis = %q, want first and last labels", got)
	}
	if lipgloss.Width(got) != 40 {
		t.Errorf("axis width = %d, want 40", lipgloss.Width(got))
	}
}

func TestRenderBarChart(t *testing.T) {
	if got := RenderBarChart(nil, nil, 40, "42"); !strings.Contains(got, NoDataText) {
		t.Errorf("empty chart = %q", got)
	}

	chart := ansi.Strip(RenderBarChart([]float64{10, 20, -30}, []string{"a", "bb"}, 40, "42"))
	lines := strings.Split(chart, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "bb │") || !strings.HasSuffix(lines[1], "20") {
		t.Errorf("line = %q", lines[1])
	}
	if strings.Contains(lines[2], "█") {
		t.Errorf("negative value drew a bar: %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], "-30") {
		t.Errorf("negative value should still be printed: %q", lines[2])
	}
	if strings.Count(lines[0], "█") >= strings.Count(lines[1], "█") {
		t.Error("bars should scale with value")
	}
}

func TestRenderBarChart_LongLabels(t *testing.T) {
	long := strings.Repeat("x", 60)
	chart := ansi.Strip(RenderBarChart([]float64{1}, []string{long}, 80, "42"))
	if strings.Contains(chart, long) {
		t.Error("long labels should be truncated")
	}
	if !strings.Contains(chart, "…") {
		t.Error("truncated label should end with an ellipsis")
	}
}

func TestRenderSplitBar(t *testing.T) {
	a := LegendItem{Label: "Conversion rate", Color: "42"}
	b := LegendItem{Label: "Bounce rate", Color: "208"}

	tests := []struct {
		name   string
		x, y   float64
		filled int
	}{
		{"Typical", 30, 50, 16},
		{"Zero", 0, 0, 0},
		{"Overflow", 70, 60, 20},
		{"Negative", -10, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(RenderSplitBar(a, b, tt.x, tt.y, 20))
			bar := strings.Split(out, "\n")[0]
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("filled = %d, want %d (%q)", got, tt.filled, bar)
			}
			if lipgloss.Width(bar) != 20 {
				t.Errorf("bar width = %d, want 20", lipgloss.Width(bar))
			}
			if !strings.Contains(out, "Conversion rate") || !strings.Contains(out, "Bounce rate") {
				t.Error("legend missing")
			}
		})
	}
}

func TestRenderSparkline(t *testing.T) {
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty sparkline should be empty")
	}
	got := RenderSparkline([]float64{0, 1, 2, 3}, 10)
	if len([]rune(got)) != 4 {
		t.Errorf("sparkline = %q, want 4 cells", got)
	}
	if []rune(got)[3] != '█' {
		t.Errorf("max value should use full block, got %q", got)
	}
}

func TestRenderLegend(t *testing.T) {
	got := ansi.Strip(RenderLegend([]LegendItem{{Label: "A", Color: "1"}, {Label: "B", Color: "2"}}))
	if got != "■ A  ■ B" {
		t.Errorf("legend = %q", got)
	}
}

func TestRenderTiles(t *testing.T) {
	tiles := []Tile{
		{Label: "Websites", Value: "2"},
		{Label: "Avg conversion", Value: "20.0%"},
		{Label: "Avg bounce", Value: "40.0%"},
	}

	wide := ansi.Strip(RenderTiles(tiles, 200))
	for _, tile := range tiles {
		if !strings.Contains(wide, tile.Label) || !strings.Contains(wide, tile.Value) {
			t.Errorf("tiles missing %q", tile.Label)
		}
	}

	narrow := RenderTiles(tiles, 30)
	if lipgloss.Height(narrow) <= lipgloss.Height(RenderTiles(tiles, 200)) {
		t.Error("narrow layout should wrap onto more rows")
	}

	if RenderTiles(nil, 80) != "" {
		t.Error("no tiles should render nothing")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		1234:    "1,234",
		-30:     "-30",
		1234.56: "1,234.6",
		12.5:    "12.5",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestRenderGauge(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		width   int
		want    int
	}{
		{"half", 50, 20, 20},
		{"over", 250, 20, 20},
		{"negative", -5, 20, 20},
		{"narrow", 30, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.StringWidth(RenderGauge(tt.percent, tt.width))
			if got != tt.want {
				t.Errorf("width = %d, want %d", got, tt.want)
			}
		})
	}
}
