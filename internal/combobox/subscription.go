package combobox

import "sync"

// Subscription is a handle to an installed listener.
// Dispose removes the listener; calling it again is a no-op.
type Subscription interface {
	Dispose()
}

type subscription struct {
	once    sync.Once
	release func()
}

// NewSubscription wraps release so it runs at most once
func NewSubscription(release func()) Subscription {
	return &subscription{release: release}
}

func (s *subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}
