package components

import (
	"math"

	"github.com/charmbracelet/bubbles/progress"
)

// RenderGauge draws a static bar filled to percent (0-100), red when full.
// Values outside the range are clamped.
func RenderGauge(percent float64, width int) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = max(0, min(percent, 100))

	p := progress.New(
		progress.WithScaledGradient("#51cf66", "#ff6b6b"),
		progress.WithWidth(max(width, 10)),
		progress.WithoutPercentage(),
	)
	return p.ViewAs(percent / 100)
}
