package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/siteboard/internal/analytics"
	"github.com/j-veylop/siteboard/internal/ui/components"
	"github.com/j-veylop/siteboard/internal/ui/styles"
)

const (
	minCardWidth = 40
	chartHeight  = 8
)

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{m.renderTitle()}

	if m.state.GetWebsiteCount() == 0 {
		sections = append(sections, m.renderEmpty())
	} else {
		ov := m.state.GetOverview()
		sections = append(sections,
			components.RenderTiles(m.tiles(ov), m.cardWidth()),
			"",
			m.renderSplit(ov),
			m.renderConversionByDay(ov),
			m.renderVisitsByDay(ov),
			m.renderTopWebsites(ov),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, minCardWidth)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Overview")
	subtitle := styles.HelpStyle.Render("Analytics across all websites")

	if w, ok := m.state.GetSelectedWebsite(); ok {
		subtitle += styles.HelpStyle.Render(" · selected: ") + styles.FocusedStyle.Render(w.DisplayName())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmpty() string {
	rows := []string{
		styles.CardTitleStyle.Render("Websites"),
		styles.HelpStyle.Render("No websites available"),
		"",
		styles.InfoTextStyle.Render("Press r to fetch the website list again"),
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) tiles(ov analytics.Overview) []components.Tile {
	return []components.Tile{
		{Label: "Websites", Value: components.FormatNumber(float64(ov.WebsiteCount))},
		{Label: "Avg. conversion", Value: components.FormatPercent(ov.AverageConversionRate), Color: styles.Conversion},
		{Label: "Avg. bounce", Value: components.FormatPercent(ov.AverageBounceRate), Color: styles.Bounce},
		{Label: "Derived views", Value: components.FormatNumber(ov.DerivedViews), Color: styles.Visits},
	}
}

func (m *Model) card(title, body string) string {
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render(title), body),
	)
}

func (m *Model) renderSplit(ov analytics.Overview) string {
	bar := components.RenderSplitBar(
		components.LegendItem{Label: ov.Split[0].Label, Color: styles.Conversion},
		components.LegendItem{Label: ov.Split[1].Label, Color: styles.Bounce},
		ov.Split[0].Value,
		ov.Split[1].Value,
		m.cardWidth()-6,
	)
	return m.card("Conversion vs. bounce", bar)
}

func (m *Model) renderConversionByDay(ov analytics.Overview) string {
	chart := components.RenderBarChart(
		analytics.Values(ov.ConversionByDay),
		analytics.Labels(ov.ConversionByDay),
		m.cardWidth()-6,
		styles.Conversion,
	)
	return m.card("Conversion by day", chart)
}

func (m *Model) renderVisitsByDay(ov analytics.Overview) string {
	width := m.cardWidth() - 16
	chart := components.RenderLineChart(analytics.Values(ov.VisitsByDay), width, chartHeight, "visits")
	if len(ov.VisitsByDay) > 0 {
		chart = lipgloss.JoinVertical(lipgloss.Left, chart, components.RenderAxisLabels(analytics.Labels(ov.VisitsByDay), width))
	}
	return m.card("Visits by day", chart)
}

func (m *Model) renderTopWebsites(ov analytics.Overview) string {
	// TopWebsites keeps list order, so the selection index applies
	labels := analytics.Labels(ov.TopWebsites)
	if i := m.state.GetSelectedWebsiteIndex(); i >= 0 && i < len(labels) {
		labels[i] = "▸ " + labels[i]
	}

	chart := components.RenderBarChart(analytics.Values(ov.TopWebsites), labels, m.cardWidth()-6, styles.Visits)
	return m.card(fmt.Sprintf("Top websites (%d)", ov.WebsiteCount), chart)
}
