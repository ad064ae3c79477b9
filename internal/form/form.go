// Package form is the trip search form: two station comboboxes filtered by
// their own search text.
package form

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"stationpicker/internal/combobox"
	"stationpicker/internal/domain"
	"stationpicker/internal/eventbus"
)

// Field names a combobox in the form
type Field string

const (
	FieldFrom Field = "from"
	FieldTo   Field = "to"
)

// Rows shown instead of options
const (
	LoadingRow = "Loading stations…"
	NoMatchRow = "No stations match"
)

// Options configures a Form
type Options struct {
	From     combobox.Config
	To       combobox.Config
	Styles   combobox.Styles
	Registry *combobox.Registry
	Document *combobox.Document
	Zones    *zone.Manager
	Bus      eventbus.EventBus
	Logger   zerolog.Logger
}

type field struct {
	name       Field
	model      *combobox.Model
	searchText string
	selected   string
}

// Form hosts the From and To comboboxes over a shared station list
type Form struct {
	fields []*field
	focus  int

	stations []domain.Station
	loading  bool
	err      error

	spinner spinner.Model
	keys    KeyMap
	doc     *combobox.Document
	bus     eventbus.EventBus
	log     zerolog.Logger

	errStyle     lipgloss.Style
	summaryStyle lipgloss.Style
}

// New creates a form in the loading state with the From field focused
func New(opts Options) *Form {
	if opts.Registry == nil {
		opts.Registry = combobox.DefaultRegistry()
	}
	if opts.Document == nil {
		opts.Document = combobox.DefaultDocument()
	}
	if opts.Styles.Classes == nil {
		opts.Styles = combobox.DefaultStyles()
	}

	f := &Form{
		loading:      true,
		keys:         DefaultKeyMap(),
		doc:          opts.Document,
		bus:          opts.Bus,
		log:          opts.Logger.With().Str("component", "form").Logger(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		errStyle:     opts.Styles.Class("error"),
		summaryStyle: lipgloss.NewStyle().Bold(true),
	}
	f.spinner.Style = opts.Styles.Class("accent")

	for _, def := range []struct {
		name Field
		cfg  combobox.Config
	}{{FieldFrom, opts.From}, {FieldTo, opts.To}} {
		fd := &field{name: def.name}
		idx := len(f.fields)
		fd.model = combobox.NewModel(def.cfg,
			combobox.WithRegistry(opts.Registry),
			combobox.WithDocument(opts.Document),
			combobox.WithLogger(opts.Logger.With().Str("component", "combobox").Str("field", string(def.name)).Logger()),
			combobox.OnOpenChange(func(open bool) { f.openChanged(fd, open) }),
			combobox.OnFocusInput(func() { f.focusField(idx) }),
		)
		fd.model.SetStyles(opts.Styles)
		fd.model.SetZoneManager(opts.Zones)
		f.fields = append(f.fields, fd)
	}

	f.fields[0].model.Focus()
	f.refilterAll()
	return f
}

// Init starts the spinner and the cursor blink
func (f *Form) Init() tea.Cmd {
	return tea.Batch(f.spinner.Tick, f.fields[f.focus].model.Init())
}

// Model returns the combobox for name, nil for unknown fields
func (f *Form) Model(name Field) *combobox.Model {
	if fd := f.field(name); fd != nil {
		return fd.model
	}
	return nil
}

// Focused returns the field holding keyboard focus
func (f *Form) Focused() Field {
	return f.fields[f.focus].name
}

// SearchText returns the filter text of a field
func (f *Form) SearchText(name Field) string {
	if fd := f.field(name); fd != nil {
		return fd.searchText
	}
	return ""
}

// Selected returns the station chosen in a field, "" when none
func (f *Form) Selected(name Field) string {
	if fd := f.field(name); fd != nil {
		return fd.selected
	}
	return ""
}

// Selection returns both chosen stations
func (f *Form) Selection() domain.Selection {
	return domain.Selection{From: f.Selected(FieldFrom), To: f.Selected(FieldTo)}
}

// Summary returns "From -> To" once both stations are chosen
func (f *Form) Summary() string {
	sel := f.Selection()
	if !sel.Complete() {
		return ""
	}
	return fmt.Sprintf("%s -> %s", sel.From, sel.To)
}

// Loading reports whether stations are still being fetched
func (f *Form) Loading() bool {
	return f.loading
}

// Err returns the fetch error, if any
func (f *Form) Err() error {
	return f.err
}

// KeyMap returns the field navigation bindings
func (f *Form) KeyMap() KeyMap {
	return f.keys
}

// SetStations replaces the station list and leaves the loading state
func (f *Form) SetStations(stations []domain.Station) {
	f.stations = stations
	f.loading = false
	f.err = nil
	f.log.Debug().Int("stations", len(stations)).Msg("stations received")
	f.refilterAll()
}

// SetError leaves the loading state with a fetch error
func (f *Form) SetError(err error) {
	f.stations = nil
	f.loading = false
	f.err = err
	f.refilterAll()
}

// Update routes keys to the focused field and everything else to the spinner
// and both fields
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Next):
			return f.focusField((f.focus + 1) % len(f.fields))
		case key.Matches(msg, f.keys.Prev):
			return f.focusField((f.focus + len(f.fields) - 1) % len(f.fields))
		}
		fd := f.fields[f.focus]
		cmd := fd.model.Update(msg)
		f.sync(fd)
		return cmd

	case spinner.TickMsg:
		if !f.loading {
			return nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return cmd

	case combobox.SearchTextChangedMsg:
		// already applied synchronously in sync
		return nil

	default:
		var cmds []tea.Cmd
		for _, fd := range f.fields {
			cmds = append(cmds, fd.model.Update(msg))
		}
		return tea.Batch(cmds...)
	}
}

// HitTest resolves a mouse event to a click path through the form's widgets.
// An empty path means the click landed outside every widget.
func (f *Form) HitTest(msg tea.MouseMsg) []combobox.Target {
	for _, fd := range f.fields {
		if path := fd.model.HitTest(msg); path != nil {
			return path
		}
	}
	return nil
}

// Click dispatches a mouse press through the document
func (f *Form) Click(msg tea.MouseMsg) tea.Cmd {
	f.doc.Dispatch(combobox.NewClickEvent(f.HitTest(msg)...))
	return f.flush()
}

// Destroy tears down both comboboxes
func (f *Form) Destroy() {
	for _, fd := range f.fields {
		fd.model.Destroy()
	}
}

// View renders both fields and a status line
func (f *Form) View() string {
	views := make([]string, 0, len(f.fields)+1)
	for _, fd := range f.fields {
		views = append(views, fd.model.View())
	}

	switch {
	case f.loading:
		views = append(views, f.spinner.View()+" "+LoadingRow)
	case f.err != nil:
		views = append(views, f.errStyle.Render("Could not load stations: "+f.err.Error()))
	case f.Summary() != "":
		views = append(views, f.summaryStyle.Render(f.Summary()))
	default:
		views = append(views, fmt.Sprintf("%d stations", len(f.stations)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (f *Form) field(name Field) *field {
	for _, fd := range f.fields {
		if fd.name == name {
			return fd
		}
	}
	return nil
}

func (f *Form) focusField(idx int) tea.Cmd {
	if idx == f.focus && f.fields[idx].model.Focused() {
		return nil
	}
	f.focus = idx
	for i, fd := range f.fields {
		if i != idx {
			fd.model.Blur()
		}
	}
	return f.fields[idx].model.Focus()
}

// sync picks up text the combobox changed on its own, by typing or by Escape
func (f *Form) sync(fd *field) {
	text := fd.model.Value()
	if text == fd.searchText {
		return
	}
	fd.searchText = text
	f.publish(eventbus.SearchTextChangedEvent{Field: string(fd.name), Text: text})
	f.refilter(fd)
}

func (f *Form) selectOption(fd *field, name string) {
	fd.searchText = name
	fd.selected = name
	fd.model.SetValue(name)
	f.log.Info().Str("field", string(fd.name)).Str("station", name).Msg("station selected")
	f.publish(eventbus.StationSelectedEvent{Field: string(fd.name), Station: name})
	f.refilter(fd)
}

func (f *Form) openChanged(fd *field, open bool) {
	if open {
		f.publish(eventbus.ListboxOpenedEvent{Field: string(fd.name)})
	} else {
		f.publish(eventbus.ListboxClosedEvent{Field: string(fd.name)})
	}
}

func (f *Form) refilterAll() {
	for _, fd := range f.fields {
		f.refilter(fd)
	}
}

// refilter rebuilds a field's rows from the station list and its search text
func (f *Form) refilter(fd *field) {
	switch {
	case f.loading:
		fd.model.SetOptions([]combobox.Option{combobox.NewPresentation(LoadingRow)})
		return
	case f.err != nil:
		fd.model.SetOptions([]combobox.Option{combobox.NewPresentation("Could not load stations")})
		return
	}

	matches := domain.FilterStations(f.stations, fd.searchText)
	if len(matches) == 0 {
		fd.model.SetOptions([]combobox.Option{combobox.NewPresentation(NoMatchRow)})
		return
	}

	options := make([]combobox.Option, len(matches))
	for i, s := range matches {
		name := s.Name
		options[i] = combobox.NewOption(OptionID(fd.name, i), name, func() { f.selectOption(fd, name) })
	}
	fd.model.SetOptions(options)
}

func (f *Form) flush() tea.Cmd {
	var cmds []tea.Cmd
	for _, fd := range f.fields {
		cmds = append(cmds, fd.model.Flush())
	}
	return tea.Batch(cmds...)
}

func (f *Form) publish(event eventbus.DomainEvent) {
	if f.bus != nil {
		f.bus.Publish(event)
	}
}

// OptionID returns the document-unique id of the i-th filtered row of a field
func OptionID(name Field, i int) string {
	return fmt.Sprintf("%s-opt-%d", name, i)
}
