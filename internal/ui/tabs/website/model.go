// Package website provides the single-website tab: pick a website and a date
// range, fetch its analytics and chart the result.
package website

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/siteboard/internal/app"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/services/query"
	"github.com/j-veylop/siteboard/internal/ui/components"
)

// keyMap defines the key bindings specific to the website tab.
type keyMap struct {
	NextWebsite key.Binding
	PrevWebsite key.Binding
	EditDates   key.Binding
	Submit      key.Binding
	AllTime     key.Binding
	Cancel      key.Binding
	Preset      key.Binding
	ClearDates  key.Binding
	Up          key.Binding
	Down        key.Binding
}

// defaultKeyMap returns the default key bindings for the website tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextWebsite: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next website"),
		),
		PrevWebsite: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev website"),
		),
		EditDates: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit dates"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "fetch range"),
		),
		AllTime: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "fetch all data"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel fetch"),
		),
		Preset: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle preset"),
		),
		ClearDates: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear dates"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

type dateField int

const (
	fieldStart dateField = iota
	fieldEnd
)

// Model represents the website tab state.
type Model struct {
	state         *app.State
	commands      *app.Commands
	services      *services.Manager
	now           func() time.Time
	form          query.Form
	startInput    textinput.Model
	endInput      textinput.Model
	spinner       components.LoadingSpinner
	keys          keyMap
	viewport      viewport.Model
	width         int
	height        int
	focusedField  dateField
	preset        models.RangePreset
	presetApplied bool
	editing       bool
}

func newDateInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = len(models.DateLayout)
	in.Width = len(models.DateLayout) + 1
	return in
}

// New creates a new website model.
func New(state *app.State, cmds *app.Commands, mgr *services.Manager) *Model {
	if cmds == nil {
		cmds = app.NewCommands(mgr)
	}
	return &Model{
		state:      state,
		commands:   cmds,
		services:   mgr,
		now:        time.Now,
		startInput: newDateInput("Start: "),
		endInput:   newDateInput("End:   "),
		spinner:    components.NewSpinner("Fetching website data..."),
		keys:       defaultKeyMap(),
		viewport:   viewport.New(0, 0),
	}
}

// Init initializes the website tab.
func (m *Model) Init() tea.Cmd {
	m.syncWebsite()
	return m.spinner.Init()
}

// CapturingInput reports whether the date fields own the keyboard.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// Form returns the pending selection.
func (m *Model) Form() query.Form {
	return m.form
}

// Update handles messages for the website tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.editing {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m, m.updateDateForm(keyMsg)
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case app.WebsitesLoadedMsg:
		m.syncWebsite()

	case app.QueryAppliedMsg:
		m.viewport.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit labels the spinner for the new fetch unless one is still running.
func (m *Model) submit(allTime bool) tea.Cmd {
	m.syncWebsite()

	if m.snapshot().Phase != query.Fetching {
		name := "website"
		if w, ok := m.state.GetSelectedWebsite(); ok {
			name = w.DisplayName()
		}
		if allTime {
			m.spinner.SetLabel(fmt.Sprintf("Fetching all data for %s...", name))
		} else {
			m.spinner.SetLabel(fmt.Sprintf("Fetching %s for %s...", m.form.Range(false), name))
		}
	}

	return m.commands.SubmitQuery(m.form, allTime)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextWebsite):
		m.state.MoveSelection(1)
		m.syncWebsite()

	case key.Matches(msg, m.keys.PrevWebsite):
		m.state.MoveSelection(-1)
		m.syncWebsite()

	case key.Matches(msg, m.keys.EditDates):
		return m.startEditing()

	case key.Matches(msg, m.keys.Submit):
		return m.submit(false)

	case key.Matches(msg, m.keys.AllTime):
		return m.submit(true)

	case key.Matches(msg, m.keys.Cancel):
		return m.commands.CancelQuery()

	case key.Matches(msg, m.keys.Preset):
		if m.presetApplied {
			m.preset = m.preset.Next()
		}
		m.presetApplied = true
		m.form.ApplyPreset(m.preset, m.now())

	case key.Matches(msg, m.keys.ClearDates):
		m.form.ClearDates()
		m.presetApplied = false

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// syncWebsite points the form at the selected website.
func (m *Model) syncWebsite() {
	m.form.WebsiteID = ""
	if w, ok := m.state.GetSelectedWebsite(); ok {
		m.form.WebsiteID = w.WebsiteID
	}
}

// SetSize sets the available size for the website tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextWebsite,
		m.keys.PrevWebsite,
		m.keys.EditDates,
		m.keys.Submit,
		m.keys.AllTime,
		m.keys.Cancel,
		m.keys.Preset,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextWebsite, m.keys.PrevWebsite},
		{m.keys.EditDates, m.keys.Preset, m.keys.ClearDates},
		{m.keys.Submit, m.keys.AllTime, m.keys.Cancel},
		{m.keys.Up, m.keys.Down},
	}
}
