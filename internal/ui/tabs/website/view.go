package website

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/siteboard/internal/analytics"
	"github.com/j-veylop/siteboard/internal/api"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services/query"
	"github.com/j-veylop/siteboard/internal/ui/components"
	"github.com/j-veylop/siteboard/internal/ui/styles"
)

const minCardWidth = 40

// View renders the website tab.
func (m *Model) View() string {
	snap := m.snapshot()

	sections := []string{
		m.renderTitle(),
		m.renderSelector(snap),
		m.renderStatus(snap),
	}

	if snap.Data == nil {
		sections = append(sections, m.renderNoData())
	} else {
		sections = append(sections, m.renderData(snap)...)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) snapshot() query.Snapshot {
	if m.services == nil {
		return query.Snapshot{}
	}
	return m.services.Query().Snapshot()
}

func (m *Model) cardWidth() int {
	return max(m.width-6, minCardWidth)
}

func (m *Model) card(title string, rows ...string) string {
	body := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Website")
	subtitle := styles.HelpStyle.Render("Analytics for a single website")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderSelector(snap query.Snapshot) string {
	var rows []string

	if w, ok := m.state.GetSelectedWebsite(); ok {
		pos := fmt.Sprintf("(%d/%d)", m.state.GetSelectedWebsiteIndex()+1, m.state.GetWebsiteCount())
		rows = append(rows, fmt.Sprintf("%s %s %s %s",
			styles.HelpStyle.Render("◀"),
			styles.FocusedStyle.Render(w.DisplayName()),
			styles.HelpStyle.Render("▶"),
			styles.HelpStyle.Render(pos),
		))
	} else {
		rows = append(rows, styles.WarningTextStyle.Render("No website selected"))
	}
	rows = append(rows, "")

	if m.editing {
		rows = append(rows, m.renderDateInputs()...)
	} else {
		rows = append(rows, m.renderDates())
	}
	rows = append(rows, "", m.renderActions(snap.Phase == query.Fetching))

	return m.card("Selection", rows...)
}

// renderActions shows which of submit, all data and cancel apply right now.
func (m *Model) renderActions(fetching bool) string {
	button := func(label string, active bool) string {
		if active {
			return styles.ButtonActiveStyle.Render(label)
		}
		return styles.ButtonInactiveStyle.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		button("Submit (enter)", !fetching),
		button("All Data (a)", !fetching),
		button("Cancel (x)", fetching),
	)
}

func (m *Model) renderDates() string {
	value := func(s string) string {
		if s == "" {
			return styles.BlurredStyle.Render("not set")
		}
		return styles.InfoTextStyle.Render(s)
	}

	line := fmt.Sprintf("Start: %s   End: %s", value(m.form.Start), value(m.form.End))
	if m.presetApplied {
		line += styles.HelpStyle.Render("   preset: " + m.preset.String())
	}
	return line
}

func (m *Model) renderDateInputs() []string {
	inputStyle := func(f dateField) lipgloss.Style {
		if m.focusedField == f {
			return styles.FocusedBorderStyle
		}
		return styles.BlurredBorderStyle
	}

	return []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			inputStyle(fieldStart).Render(m.startInput.View()),
			" ",
			inputStyle(fieldEnd).Render(m.endInput.View()),
		),
		styles.HelpStyle.Render("Tab: next field | Enter: apply | Esc: cancel"),
	}
}

func (m *Model) renderStatus(snap query.Snapshot) string {
	switch snap.Phase {
	case query.Fetching:
		return m.spinner.View() + "\n"
	case query.Failed:
		msg := "Last fetch failed"
		if snap.Err != nil {
			if errors.Is(snap.Err, api.ErrUnsuccessful) {
				msg = "The backend returned no data for this website"
			} else {
				msg = fmt.Sprintf("%s: %v", msg, snap.Err)
			}
		}
		return styles.ErrorTextStyle.Render(msg) + "\n"
	}
	return ""
}

func (m *Model) renderNoData() string {
	return m.card("Data",
		styles.HelpStyle.Render(components.NoDataText),
		"",
		styles.InfoTextStyle.Render("Press enter to fetch the selected range, or a for all data"),
	)
}

func (m *Model) renderData(snap query.Snapshot) []string {
	data := snap.Data

	name := snap.WebsiteID
	for _, w := range m.state.GetWebsites() {
		if w.WebsiteID == snap.WebsiteID {
			name = w.DisplayName()
			break
		}
	}
	header := styles.SubTitleStyle.Render(fmt.Sprintf("%s · %s", name, snap.Range))

	tiles := components.RenderTiles([]components.Tile{
		{Label: "Total views", Value: components.FormatNumber(data.TotalVisits.Float()), Color: styles.Visits},
		{Label: "Total calls", Value: components.FormatNumber(analytics.TotalCalls(data)), Color: styles.Calls},
		{Label: "Conversion", Value: components.FormatPercent(data.ConversionPercentage.Float()), Color: styles.Conversion},
		{Label: "Bounce", Value: components.FormatPercent(data.BounceRate.Float()), Color: styles.Bounce},
	}, m.cardWidth())

	chartWidth := m.cardWidth() - 6

	split := analytics.ConversionBounceSplit(data)
	splitBar := components.RenderSplitBar(
		components.LegendItem{Label: split[0].Label, Color: styles.Conversion},
		components.LegendItem{Label: split[1].Label, Color: styles.Bounce},
		split[0].Value,
		split[1].Value,
		chartWidth,
	)

	daily := analytics.DailyConversionSeries(data)

	return []string{
		header,
		tiles,
		"",
		m.card("Button clicks", m.renderButtons(data, chartWidth)),
		m.card("Conversion vs. bounce", splitBar),
		m.card("Daily conversion", components.RenderBarChart(
			analytics.Values(daily), analytics.Labels(daily), chartWidth, styles.Conversion,
		)),
	}
}

func (m *Model) renderButtons(data *models.SingleWebsiteAnalytics, width int) string {
	breakdown := analytics.ButtonClickBreakdown(data)

	keys := make([]int, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	values := make([]float64, len(keys))
	labels := make([]string, len(keys))
	for i, k := range keys {
		values[i] = breakdown[k]
		labels[i] = analytics.ButtonLabel(k)
	}

	return components.RenderBarChart(values, labels, width, styles.Calls)
}
