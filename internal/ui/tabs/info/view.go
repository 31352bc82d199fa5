package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/siteboard/internal/ui/components"
	"github.com/j-veylop/siteboard/internal/ui/styles"
	"github.com/j-veylop/siteboard/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderCacheCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, cache and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration")}

	if cfg := m.config; cfg != nil {
		ttl := cfg.CacheTTL.String()
		if cfg.CacheTTL <= 0 {
			ttl = "never expires"
		}
		timeout := cfg.RequestTimeout.String()
		if cfg.RequestTimeout == 0 {
			timeout = "transport default"
		}

		rows = append(rows,
			m.renderConfigRow("Backend URL", cfg.BackendURL),
			m.renderConfigRow("Env File", orDefault(cfg.EnvFile, "none")),
			m.renderConfigRow("Cache TTL", ttl),
			m.renderConfigRow("Cache Path", orDefault(cfg.CachePath, "in-memory")),
			m.renderConfigRow("Request Timeout", timeout),
			m.renderConfigRow("Log File", orDefault(cfg.LogPath, "stderr")),
			m.renderConfigRow("Log Level", orDefault(cfg.LogLevel, "info")),
			m.renderConfigRow("Desktop Notices", strconv.FormatBool(cfg.DesktopNotifications)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderRateRow shows a failure percentage colored by health, with a gauge.
func (m *Model) renderRateRow(label string, rate float64) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	value := styles.RateStyle(rate, true).Render(fmt.Sprintf("%.1f%%", rate))
	return labelStyle.Render(label+":") + " " + value + "  " + components.RenderGauge(rate, 20)
}

func (m *Model) renderCacheCard() string {
	rows := []string{styles.CardTitleStyle.Render("Cache & Fetches")}

	if m.cached {
		rows = append(rows, m.renderConfigRow("Website List", "cached "+humanize.Time(m.cachedAt)))
	} else {
		rows = append(rows, m.renderConfigRow("Website List", "not cached"))
	}

	switch {
	case m.loadErr != nil:
		rows = append(rows, "", styles.ErrorTextStyle.Render(fmt.Sprintf("Failed to read fetch log: %v", m.loadErr)))
	case m.stats == nil:
		rows = append(rows, "", styles.HelpStyle.Render("Fetch log needs CACHE_PATH"))
	default:
		rows = append(rows,
			m.renderConfigRow("Fetches", humanize.Comma(m.stats.TotalFetches)),
			m.renderRateRow("Error Rate", m.stats.ErrorRate()),
			m.renderConfigRow("Avg. Duration", humanize.CommafWithDigits(m.stats.AvgDurationMs, 0)+"ms"),
			"",
			m.table.View(),
		)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About siteboard"),
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
		fmt.Sprintf("Websites: %s", styles.InfoTextStyle.Render(strconv.Itoa(m.state.GetWebsiteCount()))),
	}
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		rows = append(rows, styles.HelpStyle.Render("List updated "+humanize.Time(updated)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
