package combobox

// Role distinguishes selectable rows from decorative ones
type Role string

const (
	RoleOption       Role = "option"
	RolePresentation Role = "presentation"
)

// Option is a row supplied by the consumer. Rows with RoleOption need an id
// unique within the document and usually an OnActivate handler implementing
// selection; presentation rows are skipped by keyboard navigation.
type Option struct {
	ID         string
	Label      string
	Role       Role
	OnActivate func()
}

// NewOption returns a selectable row
func NewOption(id, label string, onActivate func()) Option {
	return Option{ID: id, Label: label, Role: RoleOption, OnActivate: onActivate}
}

// NewPresentation returns a row ignored by navigation
func NewPresentation(label string) Option {
	return Option{Label: label, Role: RolePresentation}
}

// Selectable reports whether navigation can land on the row
func (o Option) Selectable() bool {
	return o.Role == RoleOption && o.ID != ""
}

// Listbox holds the consumer's rows and the presentation state derived from
// them: which row carries the highlight marker and which window is scrolled
// into view. Lookups for unknown ids are no-ops.
type Listbox struct {
	children []Option
	marked   map[string]bool
	offset   int
	height   int
}

// NewListbox creates a listbox showing at most height rows; 0 shows all rows
func NewListbox(height int) *Listbox {
	return &Listbox{
		marked: make(map[string]bool),
		height: height,
	}
}

// SetChildren replaces the rows. Markers on rows that are gone are dropped.
func (l *Listbox) SetChildren(children []Option) {
	l.children = append([]Option(nil), children...)
	for id := range l.marked {
		if _, ok := l.indexOf(id); !ok {
			delete(l.marked, id)
		}
	}
	l.clampOffset()
}

// Children returns all rows in document order
func (l *Listbox) Children() []Option {
	return l.children
}

// Options returns the selectable rows in document order
func (l *Listbox) Options() []Option {
	var out []Option
	for _, c := range l.children {
		if c.Selectable() {
			out = append(out, c)
		}
	}
	return out
}

// Find looks up a selectable row by id
func (l *Listbox) Find(id string) (Option, bool) {
	if i, ok := l.indexOf(id); ok {
		return l.children[i], true
	}
	return Option{}, false
}

// Mark adds the highlight marker to the row with id
func (l *Listbox) Mark(id string) bool {
	if _, ok := l.indexOf(id); !ok {
		return false
	}
	l.marked[id] = true
	return true
}

// Unmark removes the highlight marker from the row with id
func (l *Listbox) Unmark(id string) {
	delete(l.marked, id)
}

// IsMarked reports whether the row with id carries the highlight marker
func (l *Listbox) IsMarked(id string) bool {
	return l.marked[id]
}

// Activate fires the row's activation handler, like clicking it
func (l *Listbox) Activate(id string) bool {
	opt, ok := l.Find(id)
	if !ok {
		return false
	}
	if opt.OnActivate != nil {
		opt.OnActivate()
	}
	return true
}

// ScrollIntoView moves the visible window the least distance needed to show
// the row with id
func (l *Listbox) ScrollIntoView(id string) {
	i, ok := l.indexOf(id)
	if !ok || l.height <= 0 {
		return
	}
	if i < l.offset {
		l.offset = i
	} else if i >= l.offset+l.height {
		l.offset = i - l.height + 1
	}
}

// Offset returns the index of the first visible row
func (l *Listbox) Offset() int {
	return l.offset
}

// Height returns the maximum number of visible rows, 0 for unlimited
func (l *Listbox) Height() int {
	return l.height
}

// Visible returns the rows inside the scroll window
func (l *Listbox) Visible() []Option {
	if l.height <= 0 || len(l.children) <= l.height {
		return l.children
	}
	end := l.offset + l.height
	if end > len(l.children) {
		end = len(l.children)
	}
	return l.children[l.offset:end]
}

func (l *Listbox) indexOf(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i, c := range l.children {
		if c.Selectable() && c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (l *Listbox) clampOffset() {
	maxOffset := len(l.children) - l.height
	if l.height <= 0 || maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}
