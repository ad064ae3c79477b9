package combobox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// SearchTextChangedMsg reports new search text from the combobox with ID,
// either typed by the user or cleared with Escape
type SearchTextChangedMsg struct {
	ID   int
	Text string
}

// Zone names, prefixed per widget
const (
	zoneBoundary = "boundary"
	zoneInput    = "input"
	zoneIcon     = "icon"
	zoneListbox  = "listbox"
	zoneOption   = "option-"
	zoneRow      = "row-"
)

// Model is the Bubble Tea component wrapping a Combobox with a text input
// and a rendered listbox
type Model struct {
	cb      *Combobox
	listbox *Listbox
	input   textinput.Model

	cfg    Config
	keys   KeyMap
	styles Styles

	zones  *zone.Manager
	prefix string

	pending []tea.Cmd
}

// NewModel creates a combobox component. Settings are passed to the
// underlying Combobox; the model chains its own hooks after them.
func NewModel(cfg Config, settings ...Setting) *Model {
	cfg.ApplyDefaults()

	m := &Model{
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		listbox: NewListbox(cfg.MaxVisible),
	}

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = cfg.Placeholder
	m.input.Width = cfg.InputWidth

	m.cb = New(append([]Setting{WithListbox(m.listbox)}, settings...)...)

	userText := m.cb.onTextChange
	m.cb.onTextChange = func(text string) {
		m.input.SetValue(text)
		m.queue(m.textChanged(text))
		if userText != nil {
			userText(text)
		}
	}

	userFocus := m.cb.focusInput
	m.cb.focusInput = func() {
		m.queue(m.input.Focus())
		if userFocus != nil {
			userFocus()
		}
	}

	return m
}

// Combobox returns the underlying state machine
func (m *Model) Combobox() *Combobox { return m.cb }

// ID returns the widget id
func (m *Model) ID() int { return m.cb.ID() }

// IsOpen reports whether the listbox is expanded
func (m *Model) IsOpen() bool { return m.cb.IsOpen() }

// ActiveOptionID returns the highlighted option id
func (m *Model) ActiveOptionID() string { return m.cb.ActiveOptionID() }

// Open expands the listbox
func (m *Model) Open() { m.cb.Open() }

// Close collapses the listbox
func (m *Model) Close() { m.cb.Close() }

// Config returns the presentational settings
func (m *Model) Config() Config { return m.cfg }

// Value returns the search text
func (m *Model) Value() string { return m.cb.SearchText() }

// SetValue replaces the search text without emitting a change
func (m *Model) SetValue(text string) {
	m.cb.SetSearchText(text)
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// SetOptions replaces the listbox rows
func (m *Model) SetOptions(options []Option) {
	m.listbox.SetChildren(options)
	m.cb.SyncOptions()
}

// Options returns the listbox rows
func (m *Model) Options() []Option { return m.listbox.Children() }

// SetStyles replaces the styles
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetKeyMap replaces the keybindings
func (m *Model) SetKeyMap(k KeyMap) { m.keys = k }

// KeyMap returns the keybindings
func (m *Model) KeyMap() KeyMap { return m.keys }

// SetZoneManager enables mouse hit-testing through z
func (m *Model) SetZoneManager(z *zone.Manager) {
	m.zones = z
	if z != nil {
		m.prefix = z.NewPrefix()
	}
}

// Focus focuses the text input
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes focus from the text input
func (m *Model) Blur() { m.input.Blur() }

// Focused reports whether the text input has focus
func (m *Model) Focused() bool { return m.input.Focused() }

// Destroy tears the widget down
func (m *Model) Destroy() { m.cb.Destroy() }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses while focused and forwards everything else to
// the text input
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.input.Focused() {
			return nil
		}
		if m.cb.KeyDown(m.keys.Translate(msg)) {
			return m.flush()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.queue(cmd)
		if text := m.input.Value(); text != before {
			m.cb.SetSearchText(text)
			m.queue(m.textChanged(text))
		}
		return m.flush()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.queue(cmd)
		return m.flush()
	}
}

// Click dispatches a click on the given parts of this widget through its
// document, innermost part first
func (m *Model) Click(parts ...Target) {
	for i := range parts {
		parts[i].Owner = m.cb.ID()
	}
	m.cb.Document().Dispatch(NewClickEvent(parts...))
}

// Flush returns commands queued by clicks handled outside Update
func (m *Model) Flush() tea.Cmd {
	return m.flush()
}

// HitTest returns the propagation path of a mouse event inside this widget,
// innermost first, or nil when the event is outside it
func (m *Model) HitTest(msg tea.MouseMsg) []Target {
	if m.zones == nil || !m.inZone(zoneBoundary, msg) {
		return nil
	}

	owner := m.cb.ID()
	var path []Target
	if m.cb.IsOpen() {
		for i, row := range m.listbox.Visible() {
			if row.Selectable() && m.inZone(zoneOption+row.ID, msg) {
				path = append(path, Target{Owner: owner, Part: PartOption, OptionID: row.ID})
				break
			}
			if !row.Selectable() && m.inZone(fmt.Sprintf("%s%d", zoneRow, i), msg) {
				path = append(path, Target{Owner: owner, Part: PartPresentation})
				break
			}
		}
		if m.inZone(zoneListbox, msg) {
			path = append(path, Target{Owner: owner, Part: PartListbox})
		}
	}
	if m.inZone(zoneInput, msg) {
		path = append(path, Target{Owner: owner, Part: PartInput})
	}
	if m.inZone(zoneIcon, msg) {
		path = append(path, Target{Owner: owner, Part: PartIcon})
	}
	return append(path, Target{Owner: owner, Part: PartBoundary})
}

// View renders the label, the input with its dropdown icon and, while open,
// the listbox
func (m *Model) View() string {
	label := m.styles.Label.Inherit(m.styles.Class(m.cfg.LabelClass)).Render(m.cfg.Label)

	inputStyle := m.styles.Input
	if m.input.Focused() {
		inputStyle = m.styles.InputFocused
	}
	inputStyle = inputStyle.Inherit(m.styles.Class(m.cfg.InputClass))

	icon := "▾"
	if m.cb.IsOpen() {
		icon = "▴"
	}
	iconView := m.mark(zoneIcon, m.styles.Icon.Render(icon))
	inputView := m.mark(zoneInput, inputStyle.Render(m.input.View()))

	parts := []string{
		label,
		lipgloss.JoinHorizontal(lipgloss.Center, inputView, " ", iconView),
	}
	if m.cb.IsOpen() {
		parts = append(parts, m.mark(zoneListbox, m.renderListbox()))
	}

	return m.mark(zoneBoundary, lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderListbox() string {
	var b strings.Builder
	b.WriteString(m.styles.ListboxLabel.Render(m.cfg.ListboxLabel))

	active := m.styles.Class(ActiveDescendantClass)
	for i, row := range m.listbox.Visible() {
		b.WriteString("\n")
		if !row.Selectable() {
			b.WriteString(m.mark(fmt.Sprintf("%s%d", zoneRow, i), m.styles.Presentation.Render(row.Label)))
			continue
		}
		line := "  " + row.Label
		style := m.styles.Option
		if m.listbox.IsMarked(row.ID) {
			line = "› " + row.Label
			style = active
		}
		b.WriteString(m.mark(zoneOption+row.ID, style.Render(line)))
	}

	children := len(m.listbox.Children())
	if h := m.listbox.Height(); h > 0 && children > h {
		first := m.listbox.Offset() + 1
		last := m.listbox.Offset() + len(m.listbox.Visible())
		b.WriteString("\n")
		b.WriteString(m.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", first, last, children)))
	}

	return m.styles.Listbox.Inherit(m.styles.Class(m.cfg.ListboxClass)).Render(b.String())
}

func (m *Model) mark(id, content string) string {
	if m.zones == nil {
		return content
	}
	return m.zones.Mark(m.prefix+id, content)
}

func (m *Model) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(m.prefix + id)
	return z != nil && !z.IsZero() && z.InBounds(msg)
}

func (m *Model) textChanged(text string) tea.Cmd {
	id := m.cb.ID()
	return func() tea.Msg {
		return SearchTextChangedMsg{ID: id, Text: text}
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}
