package combobox

import (
	"sort"
	"sync"
	"sync/atomic"
)

// lastID is the process-wide widget id counter. Ids start at 1 and are never reused.
var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// Closer is the part of a widget the registry needs
type Closer interface {
	ID() int
	Close()
}

// Registry tracks live widgets so that at most one of them is open.
// It holds widgets by id; a widget removes itself with Unregister on teardown.
type Registry struct {
	mu      sync.Mutex
	widgets map[int]Closer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[int]Closer)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when none is given
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds w under its id
func (r *Registry) Register(w Closer) {
	if w == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[w.ID()] = w
}

// Unregister removes the widget with the given id. Unknown ids are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.widgets, id)
}

// CloseAllExcept closes every registered widget whose id differs from id.
// Close runs outside the lock on a snapshot taken in id order, so a widget
// registering or unregistering from its Close cannot deadlock or be visited twice.
func (r *Registry) CloseAllExcept(id int) {
	for _, w := range r.snapshot() {
		if w.ID() != id {
			w.Close()
		}
	}
}

// Len returns the number of registered widgets
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}

// Contains reports whether a widget with id is registered
func (r *Registry) Contains(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.widgets[id]
	return ok
}

func (r *Registry) snapshot() []Closer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Closer, 0, len(r.widgets))
	for _, w := range r.widgets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
