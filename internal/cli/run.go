package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stationpicker/internal/eventbus"
	"stationpicker/internal/logging"
	"stationpicker/internal/stations"
	"stationpicker/internal/ui"
)

// run starts the TUI: config, logging, bus, station fetch and the program
func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.Log.Logging())
	if err != nil {
		return err
	}
	defer closer.Close()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithContext(ctx, log)

	log.Info().Str("source", cfg.Source.URL).Msg("starting stationpicker")

	bus := eventbus.New(log)
	defer bus.Close()

	uiModel := ui.NewModel(bus, cfg, log)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward fetch results to the program
	eventChan := make(chan eventbus.DomainEvent, 100)
	done := make(chan struct{})
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventStationsLoaded, forwardEvent)
	bus.Subscribe(eventbus.EventStationsFailed, forwardEvent)

	// The rest is only logged
	for _, et := range []eventbus.EventType{
		eventbus.EventStationSelected,
		eventbus.EventListboxOpened,
		eventbus.EventListboxClosed,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			log.Debug().Str("event", string(e.Type())).Interface("payload", e).Msg("ui event")
		})
	}

	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	loader := stations.NewLoader(
		stations.NewService(cfg.Source.URL, cfg.Source.Timeout.Duration),
		bus,
		cfg.Source.URL,
	)
	go func() {
		_, _ = loader.Load(logging.WithComponent(ctx, "stations"))
	}()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info().Msg("interrupted")
			return nil
		}
		log.Error().Err(err).Msg("error running program")
		return fmt.Errorf("error running program: %w", err)
	}

	log.Info().Msg("UI exited normally")
	return nil
}
