package combobox

import "sync"

// Part identifies which piece of a widget a click landed on
type Part int

const (
	PartNone Part = iota
	PartBoundary
	PartInput
	PartIcon
	PartListbox
	PartOption
	PartPresentation
)

func (p Part) String() string {
	switch p {
	case PartBoundary:
		return "boundary"
	case PartInput:
		return "input"
	case PartIcon:
		return "icon"
	case PartListbox:
		return "listbox"
	case PartOption:
		return "option"
	case PartPresentation:
		return "presentation"
	default:
		return "none"
	}
}

// Target is one element on a click's propagation path.
// Owner is the widget id, zero for elements no widget owns.
type Target struct {
	Owner    int
	Part     Part
	OptionID string
}

// ClickEvent is a click travelling from the innermost target outwards
type ClickEvent struct {
	// Path lists targets innermost first
	Path    []Target
	stopped bool
}

// NewClickEvent builds an event for the given propagation path
func NewClickEvent(path ...Target) *ClickEvent {
	return &ClickEvent{Path: path}
}

// StopPropagation keeps the event from reaching outer handlers and document listeners
func (e *ClickEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether propagation was stopped
func (e *ClickEvent) Stopped() bool {
	return e.stopped
}

// Target returns the innermost target, if any
func (e *ClickEvent) Target() (Target, bool) {
	if len(e.Path) == 0 {
		return Target{}, false
	}
	return e.Path[0], true
}

// ClickHandler receives click events
type ClickHandler func(*ClickEvent)

type listener struct {
	id      uint64
	handler ClickHandler
}

// Document is the root every click bubbles up to.
// Widgets attach a handler for clicks on their own parts; listeners added with
// AddClickListener see every click that no widget stopped.
type Document struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
	owners    map[int]ClickHandler
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{owners: make(map[int]ClickHandler)}
}

var defaultDocument = NewDocument()

// DefaultDocument returns the process-wide document used when none is given
func DefaultDocument() *Document {
	return defaultDocument
}

// AddClickListener installs a document-level click listener
func (d *Document) AddClickListener(h ClickHandler) Subscription {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, handler: h})
	d.mu.Unlock()

	return NewSubscription(func() { d.removeListener(id) })
}

// ListenerCount returns the number of installed document-level listeners
func (d *Document) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// attach routes clicks on targets owned by id to h
func (d *Document) attach(id int, h ClickHandler) Subscription {
	d.mu.Lock()
	d.owners[id] = h
	d.mu.Unlock()

	return NewSubscription(func() {
		d.mu.Lock()
		delete(d.owners, id)
		d.mu.Unlock()
	})
}

// Dispatch delivers ev in bubble order: each owning widget along the path once,
// innermost first, then the document listeners unless propagation was stopped.
func (d *Document) Dispatch(ev *ClickEvent) {
	if ev == nil {
		return
	}

	seen := make(map[int]bool)
	for _, t := range ev.Path {
		if ev.stopped {
			return
		}
		if t.Owner == 0 || seen[t.Owner] {
			continue
		}
		seen[t.Owner] = true

		d.mu.Lock()
		h := d.owners[t.Owner]
		d.mu.Unlock()
		if h != nil {
			h(ev)
		}
	}

	if ev.stopped {
		return
	}

	// Listeners may dispose themselves or others while running
	d.mu.Lock()
	snapshot := make([]listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, l := range snapshot {
		if ev.stopped {
			return
		}
		if !d.hasListener(l.id) {
			continue
		}
		l.handler(ev)
	}
}

func (d *Document) hasListener(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (d *Document) removeListener(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}
