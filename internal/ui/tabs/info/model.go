// Package info provides the info tab: configuration, cache status, the fetch
// log and version details.
package info

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/siteboard/internal/app"
	"github.com/j-veylop/siteboard/internal/config"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/ui/styles"
)

// fetchLogLimit is the number of fetches shown in the log table.
const fetchLogLimit = 10

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Reload key.Binding
	Up     key.Binding
	Down   key.Binding
}

// defaultKeyMap returns the default key bindings for the info tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Reload: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "reload fetch log"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// statusLoadedMsg carries cache and fetch log details.
type statusLoadedMsg struct {
	cachedAt time.Time
	stats    *models.FetchStats
	err      error
	records  []models.FetchRecord
	cached   bool
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	config   *config.Config
	stats    *models.FetchStats
	cachedAt time.Time
	loadErr  error
	keys     keyMap
	table    table.Model
	viewport viewport.Model
	width    int
	height   int
	cached   bool
}

// New creates a new info model.
func New(state *app.State, mgr *services.Manager) *Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Kind", Width: 9},
		{Title: "Website", Width: 12},
		{Title: "Range", Width: 25},
		{Title: "Status", Width: 8},
		{Title: "Duration", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(fetchLogLimit+1),
	)

	// The table is read-only, so no row is highlighted
	t.SetStyles(table.Styles{
		Header:   styles.TableHeaderStyle,
		Cell:     styles.TableCellStyle,
		Selected: lipgloss.NewStyle(),
	})

	m := &Model{
		state:    state,
		services: mgr,
		keys:     defaultKeyMap(),
		table:    t,
		viewport: viewport.New(0, 0),
	}
	if mgr != nil {
		m.config = mgr.Config()
	}
	return m
}

// Init loads the cache status and fetch log.
func (m *Model) Init() tea.Cmd {
	return m.loadStatusCmd()
}

func (m *Model) loadStatusCmd() tea.Cmd {
	mgr := m.services
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		msg := statusLoadedMsg{}
		msg.cachedAt, msg.cached = mgr.CacheStatus(ctx)
		msg.records, msg.stats, msg.err = mgr.FetchLog(ctx, fetchLogLimit)
		return msg
	}
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		m.applyStatus(msg)

	case app.ConfigReloadedMsg:
		m.config = msg.Config
		return m, m.loadStatusCmd()

	case app.WebsitesLoadedMsg, app.QueryAppliedMsg:
		return m, m.loadStatusCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Reload) {
			return m, m.loadStatusCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) applyStatus(msg statusLoadedMsg) {
	m.cachedAt, m.cached = msg.cachedAt, msg.cached
	m.loadErr = msg.err
	if msg.err != nil {
		return
	}
	m.stats = msg.stats

	rows := make([]table.Row, 0, len(msg.records))
	for _, rec := range msg.records {
		status := humanize.Comma(int64(rec.StatusCode))
		if rec.Failed() {
			status = "failed"
		}
		website := rec.WebsiteID
		if website == "" {
			website = "-"
		}
		rng := "-"
		if rec.Kind == models.FetchSingleWebsite {
			rng = models.DateRange{Start: rec.StartDate, End: rec.EndDate}.String()
		}
		rows = append(rows, table.Row{
			humanize.Time(rec.Timestamp),
			string(rec.Kind),
			website,
			rng,
			status,
			humanize.Comma(rec.DurationMs) + "ms",
		})
	}
	m.table.SetRows(rows)
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Reload,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Reload},
		{m.keys.Up, m.keys.Down},
	}
}
