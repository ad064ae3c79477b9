// Package combobox implements a searchable dropdown: a text input coupled with
// a listbox of consumer-supplied options.
//
// Combobox is the interaction state machine. It tracks whether the listbox is
// expanded and which option is the active descendant, and it keeps at most one
// combobox open per Registry. While open it holds a click listener on its
// Document so that a click anywhere outside the widget dismisses it. Model
// adapts the state machine to Bubble Tea.
package combobox

import "github.com/rs/zerolog"

// KeyCode is a key the state machine reacts to
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyEnter
)

// KeyEvent is a key press delivered to the input
type KeyEvent struct {
	Code KeyCode
	Alt  bool
}

// Setting configures a Combobox at construction
type Setting func(*Combobox)

// WithRegistry coordinates the widget with others in r instead of the default registry
func WithRegistry(r *Registry) Setting {
	return func(c *Combobox) { c.registry = r }
}

// WithDocument installs outside-click listeners on d instead of the default document
func WithDocument(d *Document) Setting {
	return func(c *Combobox) { c.doc = d }
}

// WithListbox attaches the listbox up front
func WithListbox(l *Listbox) Setting {
	return func(c *Combobox) { c.listbox = l }
}

// WithLogger sets the logger for state transitions
func WithLogger(log zerolog.Logger) Setting {
	return func(c *Combobox) { c.log = log }
}

// OnSearchTextChange registers the text-change output
func OnSearchTextChange(fn func(text string)) Setting {
	return func(c *Combobox) { c.onTextChange = fn }
}

// OnOpenChange is called after every transition between open and closed
func OnOpenChange(fn func(open bool)) Setting {
	return func(c *Combobox) { c.onOpenChange = fn }
}

// OnFocusInput is called when the widget moves focus to its input
func OnFocusInput(fn func()) Setting {
	return func(c *Combobox) { c.focusInput = fn }
}

// Combobox is the open/closed and active-option state of one widget
type Combobox struct {
	id             int
	isOpen         bool
	activeOptionID string
	searchText     string
	destroyed      bool

	dismiss  Subscription
	attached Subscription

	registry *Registry
	doc      *Document
	listbox  *Listbox

	onTextChange func(string)
	onOpenChange func(bool)
	focusInput   func()

	log zerolog.Logger
}

// New creates a closed combobox and registers it
func New(settings ...Setting) *Combobox {
	c := &Combobox{
		id:  nextID(),
		log: zerolog.Nop(),
	}
	for _, s := range settings {
		s(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	if c.doc == nil {
		c.doc = DefaultDocument()
	}
	c.log = c.log.With().Int("combobox", c.id).Logger()

	c.registry.Register(c)
	c.attached = c.doc.attach(c.id, c.HandleClick)
	return c
}

// ID returns the widget's sequence id
func (c *Combobox) ID() int { return c.id }

// IsOpen reports whether the listbox is expanded
func (c *Combobox) IsOpen() bool { return c.isOpen }

// ActiveOptionID returns the id of the highlighted option, "" when none
func (c *Combobox) ActiveOptionID() string { return c.activeOptionID }

// SearchText returns the bound text
func (c *Combobox) SearchText() string { return c.searchText }

// SetSearchText updates the bound text without emitting a change
func (c *Combobox) SetSearchText(text string) { c.searchText = text }

// Listbox returns the attached listbox, nil before AttachListbox
func (c *Combobox) Listbox() *Listbox { return c.listbox }

// AttachListbox sets the listbox the widget navigates
func (c *Combobox) AttachListbox(l *Listbox) {
	c.clearActive()
	c.listbox = l
}

// Document returns the document the widget listens on
func (c *Combobox) Document() *Document { return c.doc }

// Open expands the listbox, closing every other widget in the registry first.
// Opening an open widget does nothing.
func (c *Combobox) Open() {
	if c.isOpen || c.destroyed {
		return
	}

	c.registry.CloseAllExcept(c.id)
	c.isOpen = true
	c.dismiss = c.doc.AddClickListener(func(*ClickEvent) { c.Close() })

	c.log.Debug().Msg("listbox opened")
	if c.onOpenChange != nil {
		c.onOpenChange(true)
	}
}

// Close collapses the listbox, clears the active option and removes the
// outside-click listener. Closing a closed widget does nothing.
func (c *Combobox) Close() {
	wasOpen := c.isOpen
	c.isOpen = false
	c.clearActive()

	if c.dismiss != nil {
		c.dismiss.Dispose()
		c.dismiss = nil
	}

	if wasOpen {
		c.log.Debug().Msg("listbox closed")
		if c.onOpenChange != nil {
			c.onOpenChange(false)
		}
	}
}

// ClickIcon toggles the listbox; opening this way also focuses the input
func (c *Combobox) ClickIcon() {
	if c.isOpen {
		c.Close()
		return
	}
	c.Open()
	c.focus()
}

// Step moves the active option by delta, opening the listbox if needed.
// Stepping past the last option wraps to the first; stepping before the first
// (or up from no active option) lands on the last. No options, no change.
func (c *Combobox) Step(delta int) {
	c.Open()
	if c.listbox == nil {
		return
	}

	options := c.listbox.Options()
	if len(options) == 0 {
		return
	}

	found := -1
	for i, o := range options {
		if o.ID == c.activeOptionID {
			found = i
			break
		}
	}

	next := found + delta
	if next >= 0 {
		next %= len(options)
	} else {
		next = len(options) - 1
	}

	c.clearActive()
	c.highlight(options[next].ID)
	c.listbox.ScrollIntoView(options[next].ID)

	c.log.Trace().Str("option", c.activeOptionID).Int("delta", delta).Msg("active option moved")
}

// KeyDown runs the command bound to k. It reports whether the key was
// consumed; unconsumed keys are meant for the text input.
func (c *Combobox) KeyDown(k KeyEvent) bool {
	switch k.Code {
	case KeyEscape:
		// open: close. closed: clear the text instead
		if c.isOpen {
			c.Close()
		} else {
			c.searchText = ""
			c.log.Debug().Msg("search text cleared")
			c.emit("")
		}
		return true

	case KeyArrowUp:
		c.Open()
		c.Step(-1)
		return true

	case KeyArrowDown:
		c.Open()
		if !k.Alt {
			c.Step(1)
		}
		return true

	case KeyEnter:
		if c.activeOptionID != "" && c.listbox != nil {
			c.listbox.Activate(c.activeOptionID)
		}
		c.Close()
		return true

	default:
		// typing invalidates the keyboard selection
		c.clearActive()
		return false
	}
}

// HandleClick handles a click whose path runs through this widget. The
// option's own activation runs first, then the listbox closes if the click
// landed on an option. Propagation always stops at the widget boundary.
func (c *Combobox) HandleClick(ev *ClickEvent) {
	if ev == nil {
		return
	}

	var own []Target
	for _, t := range ev.Path {
		if t.Owner == c.id {
			own = append(own, t)
		}
	}
	if len(own) == 0 {
		return
	}

	innermost := own[0]
	for _, t := range own {
		switch t.Part {
		case PartOption:
			if c.listbox != nil {
				c.listbox.Activate(t.OptionID)
			}
		case PartListbox:
			if innermost.Part == PartOption {
				c.Close()
			}
		case PartIcon:
			c.ClickIcon()
		case PartInput:
			c.focus()
		}
	}

	ev.StopPropagation()
}

// SyncOptions drops the active option if the listbox no longer contains it
func (c *Combobox) SyncOptions() {
	if c.activeOptionID == "" || c.listbox == nil {
		return
	}
	if _, ok := c.listbox.Find(c.activeOptionID); !ok {
		c.activeOptionID = ""
	}
}

// Destroy closes the widget, removes its listeners and unregisters it
func (c *Combobox) Destroy() {
	if c.destroyed {
		return
	}
	c.Close()
	c.destroyed = true
	if c.attached != nil {
		c.attached.Dispose()
		c.attached = nil
	}
	c.registry.Unregister(c.id)
	c.log.Debug().Msg("combobox destroyed")
}

// Listening reports whether the outside-click listener is installed
func (c *Combobox) Listening() bool {
	return c.dismiss != nil
}

func (c *Combobox) highlight(id string) {
	if c.listbox.Mark(id) {
		c.activeOptionID = id
	}
}

func (c *Combobox) clearActive() {
	if c.listbox != nil && c.activeOptionID != "" {
		c.listbox.Unmark(c.activeOptionID)
	}
	c.activeOptionID = ""
}

func (c *Combobox) focus() {
	if c.focusInput != nil {
		c.focusInput()
	}
}

func (c *Combobox) emit(text string) {
	if c.onTextChange != nil {
		c.onTextChange(text)
	}
}
