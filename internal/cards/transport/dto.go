// Package transport defines the HTTP request/response shapes of the cards
// module.
package transport

import (
	"time"

	"kundekort_backend/internal/cards/domain"
)

// ListCardsRequest filters and pages the card listing.
type ListCardsRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	FastOnly bool   `form:"fastOnly"`
}

// CardSummary is the listing view of one customer card.
type CardSummary struct {
	ProfileID             string     `json:"profileId"`
	Name                  string     `json:"name"`
	PrimaryEmail          *string    `json:"primaryEmail,omitempty"`
	PrimaryPhone          *string    `json:"primaryPhone,omitempty"`
	TotalBookings         int        `json:"totalBookings"`
	CompletedBookings     int        `json:"completedBookings"`
	IsFastCustomer        bool       `json:"isFastCustomer"`
	FastCleaningCount     int        `json:"fastCleaningCount,omitempty"`
	NextScheduledCleaning *time.Time `json:"nextScheduledCleaning,omitempty"`
	LifetimeValue         float64    `json:"lifetimeValue"`
	HasConflicts          bool       `json:"hasConflicts"`
	LastActivity          *time.Time `json:"lastActivity,omitempty"`
}

// CardListResponse is the paged card listing.
type CardListResponse struct {
	Items    []CardSummary `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// ReportResponse is the customer-set report.
type ReportResponse struct {
	GeneratedAt  time.Time            `json:"generatedAt"`
	Summary      domain.ReportSummary `json:"summary"`
	TopCustomers []CardSummary        `json:"topCustomers"`
}

// RebuildResponse reports the outcome of a card rebuild run.
type RebuildResponse struct {
	Profiles     int     `json:"profiles"`
	Cards        int     `json:"cards"`
	TotalRevenue float64 `json:"totalRevenue"`
	DurationMs   float64 `json:"durationMs"`
}

// ToCardSummary projects a domain card onto its listing view.
func ToCardSummary(card domain.CustomerCard) CardSummary {
	return CardSummary{
		ProfileID:             card.ProfileID,
		Name:                  card.Name,
		PrimaryEmail:          card.PrimaryEmail,
		PrimaryPhone:          card.PrimaryPhone,
		TotalBookings:         card.TotalBookings,
		CompletedBookings:     card.CompletedBookings,
		IsFastCustomer:        card.IsFastCustomer,
		FastCleaningCount:     card.FastCleaningCount,
		NextScheduledCleaning: card.NextScheduledCleaning,
		LifetimeValue:         card.LifetimeValue,
		HasConflicts:          card.HasConflicts,
		LastActivity:          card.LastActivity,
	}
}

// ToCardSummaries projects a card slice, keeping order.
func ToCardSummaries(cards []domain.CustomerCard) []CardSummary {
	items := make([]CardSummary, 0, len(cards))
	for _, card := range cards {
		items = append(items, ToCardSummary(card))
	}
	return items
}
