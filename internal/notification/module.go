package notification

import (
	"context"

	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/internal/events"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"
)

// Module hooks the digest sender onto the event bus.
type Module struct {
	digest *Digest
}

// NewModule creates the notification module and subscribes it to rebuild
// events so a digest goes out after every completed rebuild.
func NewModule(bus events.Bus, repo repository.Repository, cfg config.EmailConfig, log *logger.Logger) *Module {
	digest := NewDigest(repo, cfg, log)

	bus.Subscribe(events.CardsRebuilt{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if _, ok := event.(events.CardsRebuilt); !ok {
			return nil
		}
		if err := digest.Send(ctx); err != nil {
			log.Error("next-action digest failed", "error", err)
			return err
		}
		return nil
	}))

	return &Module{digest: digest}
}

// Digest returns the digest sender for direct invocation (CLI, tests).
func (m *Module) Digest() *Digest {
	return m.digest
}
