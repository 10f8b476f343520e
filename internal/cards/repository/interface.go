package repository

import (
	"context"
	"time"

	"kundekort_backend/internal/cards/domain"
)

// ListCardsParams controls card listing.
type ListCardsParams struct {
	Search   string
	FastOnly bool
	Offset   int
	Limit    int
}

// Repository is the persistence boundary of the cards module.
type Repository interface {
	// ListProfiles loads every raw profile with its calendar events.
	ListProfiles(ctx context.Context) ([]domain.RawProfile, error)

	// ReplaceCards atomically swaps the stored card set for the given
	// ranked cards. Rank follows slice order.
	ReplaceCards(ctx context.Context, cards []domain.CustomerCard) error

	// ListCards returns cards ordered by their rebuild rank.
	ListCards(ctx context.Context, params ListCardsParams) ([]domain.CustomerCard, int, error)

	// GetCard returns one card by profile ID.
	GetCard(ctx context.Context, profileID string) (domain.CustomerCard, error)

	// ListAllCards returns the full ranked card set.
	ListAllCards(ctx context.Context) ([]domain.CustomerCard, error)

	// ListCardsWithActionDue returns cards whose next action falls due
	// before the given time, soonest first.
	ListCardsWithActionDue(ctx context.Context, before time.Time) ([]domain.CustomerCard, error)
}
