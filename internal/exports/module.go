package exports

import (
	"context"

	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/internal/events"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"
)

// Module hooks the exporter onto the event bus.
type Module struct {
	exporter *Exporter
}

// NewModule creates the exports module and subscribes it to rebuild events
// so every completed rebuild leaves a snapshot in object storage.
func NewModule(bus events.Bus, repo repository.Repository, cfg config.StorageConfig, log *logger.Logger) (*Module, error) {
	exporter, err := New(cfg, repo, log)
	if err != nil {
		return nil, err
	}

	bus.Subscribe(events.CardsRebuilt{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if _, ok := event.(events.CardsRebuilt); !ok {
			return nil
		}
		if err := exporter.Export(ctx); err != nil {
			log.Error("card snapshot export failed", "error", err)
			return err
		}
		return nil
	}))

	return &Module{exporter: exporter}, nil
}

// Exporter returns the exporter for direct invocation (CLI, tests).
func (m *Module) Exporter() *Exporter {
	return m.exporter
}
