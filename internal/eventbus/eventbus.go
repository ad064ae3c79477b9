package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"stationpicker/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventStationsRequested = domain.EventStationsRequested
	EventStationsLoaded    = domain.EventStationsLoaded
	EventStationsFailed    = domain.EventStationsFailed
	EventSearchTextChanged = domain.EventSearchTextChanged
	EventStationSelected   = domain.EventStationSelected
	EventListboxOpened     = domain.EventListboxOpened
	EventListboxClosed     = domain.EventListboxClosed
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type StationsRequestedEvent = domain.StationsRequestedEvent
type StationsLoadedEvent = domain.StationsLoadedEvent
type StationsFailedEvent = domain.StationsFailedEvent
type SearchTextChangedEvent = domain.SearchTextChangedEvent
type StationSelectedEvent = domain.StationSelectedEvent
type ListboxOpenedEvent = domain.ListboxOpenedEvent
type ListboxClosedEvent = domain.ListboxClosedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscriber struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscriber
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

// New creates a new event bus
func New(log zerolog.Logger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscriber),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		log:       log.With().Str("component", "eventbus").Logger(),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Search text changes fire on every keystroke
	switch event.Type() {
	case EventSearchTextChanged:
		b.log.Trace().Str("event", string(event.Type())).Msg("publishing event")
	default:
		b.log.Debug().Str("event", string(event.Type())).Msg("publishing event")
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.Warn().Str("event", string(event.Type())).Msg("event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			handlers := b.handlers[eventType]
			for i, s := range handlers {
				if s.id == id {
					b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
		})
	}
}

// Close stops the dispatcher and drops any queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Copy so the lock is not held while handlers run
			b.mu.RLock()
			handlers := make([]subscriber, len(b.handlers[event.Type()]))
			copy(handlers, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range handlers {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.log.Error().
								Str("event", string(eventType)).
								Interface("panic", r).
								Bytes("stack", debug.Stack()).
								Msg("event handler panic")
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
