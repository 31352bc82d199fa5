// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/siteboard/internal/ui/styles"
)

// NoDataText is shown in place of a chart without points.
const NoDataText = "No data available"

// maxBarLabelWidth caps the label column of bar charts.
const maxBarLabelWidth = 24

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs two points to draw a line
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// RenderAxisLabels renders the first and last labels under a chart of the given width.
func RenderAxisLabels(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	first, last := labels[0], labels[len(labels)-1]
	if len(labels) == 1 {
		return styles.HelpStyle.Render(first)
	}
	gap := max(width-lipgloss.Width(first)-lipgloss.Width(last), 1)
	return styles.HelpStyle.Render(first + strings.Repeat(" ", gap) + last)
}

// RenderBarChart creates a horizontal bar chart. Negative values draw no bar.
func RenderBarChart(values []float64, labels []string, width int, color lipgloss.Color) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}
	labelWidth = min(labelWidth, maxBarLabelWidth)

	barWidth := max(width-labelWidth-12, 10)
	barStyle := lipgloss.NewStyle().Foreground(color)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = ansi.Truncate(labels[i], labelWidth, "…")
		}
		label = strings.Repeat(" ", labelWidth-lipgloss.Width(label)) + label

		barLen := 0
		if v > 0 && !math.IsInf(v, 0) {
			barLen = int((v / maxVal) * float64(barWidth))
		}

		lines = append(lines, fmt.Sprintf("%s │%s %s",
			styles.ChartLabelStyle.Render(label),
			barStyle.Render(strings.Repeat("█", barLen)),
			styles.ChartValueStyle.Render(FormatNumber(v)),
		))
	}

	return strings.Join(lines, "\n")
}

// RenderSplitBar draws two shares of 100 side by side, the remainder dimmed.
// Shares are clamped to the bar; the legend shows the real values.
func RenderSplitBar(first, second LegendItem, a, b float64, width int) string {
	width = max(width, 10)

	cells := func(v float64) int {
		if v <= 0 || math.IsNaN(v) {
			return 0
		}
		return min(int(math.Round(v/100*float64(width))), width)
	}

	na := cells(a)
	nb := min(cells(b), width-na)
	rest := width - na - nb

	bar := lipgloss.NewStyle().Foreground(first.Color).Render(strings.Repeat("█", na)) +
		lipgloss.NewStyle().Foreground(second.Color).Render(strings.Repeat("█", nb)) +
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", rest))

	legend := RenderLegend([]LegendItem{
		{Label: fmt.Sprintf("%s %s", first.Label, FormatPercent(a)), Color: first.Color},
		{Label: fmt.Sprintf("%s %s", second.Label, FormatPercent(b)), Color: second.Color},
	})

	return bar + "\n" + legend
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = max(0, min(normalized, len(sparkChars)-1))
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
