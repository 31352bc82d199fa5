package components

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/siteboard/internal/ui/styles"
)

// Tile is a single headline metric.
type Tile struct {
	Label string
	Value string
	Color lipgloss.Color
}

// RenderTile draws one metric tile.
func RenderTile(t Tile, width int) string {
	valueStyle := styles.TileValueStyle
	if t.Color != "" {
		valueStyle = valueStyle.Foreground(t.Color)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TileLabelStyle.Render(t.Label),
		valueStyle.Render(t.Value),
	)

	style := styles.TileStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(body)
}

// RenderTiles lays tiles out in a row, wrapping to fit width.
func RenderTiles(tiles []Tile, width int) string {
	if len(tiles) == 0 {
		return ""
	}

	tileWidth := 22
	perRow := max(width/(tileWidth+3), 1)

	var rows []string
	for start := 0; start < len(tiles); start += perRow {
		end := min(start+perRow, len(tiles))
		row := make([]string, 0, end-start)
		for _, t := range tiles[start:end] {
			row = append(row, RenderTile(t, tileWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// FormatNumber renders a metric with thousands separators and at most one decimal.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 1)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
