package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"stationpicker/internal/combobox"
	"stationpicker/internal/config"
	"stationpicker/internal/eventbus"
	"stationpicker/internal/form"
)

// readyMarker is printed in e2e runs once the first frame is drawn
const readyMarker = "__READY__"

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	form   *form.Form
	zones  *zone.Manager
	log    zerolog.Logger

	width       int
	height      int
	help        help.Model
	keys        KeyMap
	helpOps     *HelpOps
	inPagerMode bool // tracks if we're currently in pager mode
	e2e         bool

	titleStyle lipgloss.Style

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Each model gets its own registry and
// document so the two comboboxes only coordinate with each other.
func NewModel(bus eventbus.EventBus, cfg *config.Config, log zerolog.Logger) *Model {
	zones := zone.New()
	styles := ThemeStyles(cfg.Theme)

	m := &Model{
		bus:    bus,
		config: cfg,
		zones:  zones,
		log:    log.With().Str("component", "ui").Logger(),
		help:   help.New(),
		keys:   DefaultKeyMap(),
		e2e:    os.Getenv("STATIONPICKER_E2E_TEST") == "1",
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.Accent)).
			MarginBottom(1),
	}

	m.form = form.New(form.Options{
		From:     cfg.From,
		To:       cfg.To,
		Styles:   styles,
		Registry: combobox.NewRegistry(),
		Document: combobox.NewDocument(),
		Zones:    zones,
		Bus:      bus,
		Logger:   log,
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Form returns the hosted search form
func (m *Model) Form() *form.Form {
	return m.form
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Help):
			return m, m.fetchHelpPager(NewHelpRenderer(m.keys).RenderHelpContent())
		}
		return m, m.form.Update(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m, m.form.Click(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in the form
			m.log.Warn().Err(msg.err).Msg("help pager failed")
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		return m, m.form.Update(msg)
	}
}

// handleEvent applies domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.StationsLoadedEvent:
		m.form.SetStations(e.Stations)
	case eventbus.StationsFailedEvent:
		m.form.SetError(e.Err)
	default:
		m.log.Debug().Str("event", string(event.Type())).Msg("ignoring event")
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	parts := []string{
		m.titleStyle.Render("Station Picker"),
		m.form.View(),
		"",
		m.help.View(m.keys),
	}
	if m.e2e {
		parts = append(parts, readyMarker)
	}

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// quit tears the form down before exiting
func (m *Model) quit() tea.Cmd {
	if summary := m.form.Summary(); summary != "" {
		m.log.Info().Str("trip", summary).Msg("exiting with selection")
	}
	m.form.Destroy()
	return tea.Quit
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil {
			return helpPagerMsg{err: NewHelpOps(nil).ShowHelpInPager(helpContent)}
		}

		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}
