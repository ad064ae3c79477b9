package stations

import (
	"context"

	"stationpicker/internal/domain"
	"stationpicker/internal/eventbus"
	"stationpicker/internal/logging"
)

// Loader runs a fetch and reports the outcome on the event bus
type Loader struct {
	svc    Service
	bus    eventbus.EventBus
	source string
}

// NewLoader creates a loader publishing to bus. source is only used in the
// StationsRequested event.
func NewLoader(svc Service, bus eventbus.EventBus, source string) *Loader {
	return &Loader{svc: svc, bus: bus, source: source}
}

// Load fetches the stations, publishing StationsRequested first and then
// either StationsLoaded or StationsFailed
func (l *Loader) Load(ctx context.Context) ([]domain.Station, error) {
	log := logging.FromContext(ctx)

	l.bus.Publish(eventbus.StationsRequestedEvent{URL: l.source})

	stations, err := l.svc.GetStations(ctx)
	if err != nil {
		log.Error().Err(err).Str("url", l.source).Msg("failed to load stations")
		l.bus.Publish(eventbus.StationsFailedEvent{Err: err})
		return nil, err
	}

	log.Info().Int("count", len(stations)).Msg("stations loaded")
	l.bus.Publish(eventbus.StationsLoadedEvent{Stations: stations})
	return stations, nil
}
