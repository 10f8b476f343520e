package domain

import (
	"fmt"
	"slices"

	"kundekort_backend/platform/phone"
)

// NextActionBookFast is the recommended follow-up for recurring customers
// with a predicted next visit.
const NextActionBookFast = "Book næste fast rengøring"

// AggregateCard folds one profile's service events into a customer card.
// The fold touches only this customer's own data, so cards for different
// customers can be built in parallel without coordination.
//
// A profile with zero events yields a card with all derived numbers at zero
// and all optional fields absent.
func AggregateCard(profile RawProfile, events []ServiceEvent) CustomerCard {
	history := make([]ServiceEvent, len(events))
	copy(history, events)
	slices.SortStableFunc(history, func(a, b ServiceEvent) int {
		return b.Date.Compare(a.Date)
	})

	card := CustomerCard{
		ProfileID:   profile.ID,
		Name:        profile.Name,
		Emails:      profile.Emails,
		Phones:      profile.Phones,
		Addresses:   profile.Addresses,
		MailThreads: profile.MailThreads,
		Sources:     profile.Sources,
		Confidence:  profile.Confidence,

		ServiceHistory:  history,
		TotalBookings:   len(history),
		ConflictNotes:   []string{},
		DiscountHistory: []string{},
		Preferences:     []string{},
	}

	if len(profile.Emails) > 0 {
		card.PrimaryEmail = &profile.Emails[0]
	}
	if len(profile.Phones) > 0 {
		normalized := phone.NormalizeE164(profile.Phones[0])
		card.PrimaryPhone = &normalized
	}
	if len(profile.Addresses) > 0 {
		card.PrimaryAddress = &profile.Addresses[0]
	}
	if profile.BillyCustomerID != "" {
		id := profile.BillyCustomerID
		card.BillyCustomerID = &id
	}
	if len(profile.Companies) > 0 {
		card.BillyCompany = &profile.Companies[0]
	}

	breakdown := make(map[ServiceType]int, len(AllServiceTypes))
	for _, t := range AllServiceTypes {
		breakdown[t] = 0
	}

	seenPreferences := make(map[string]struct{})
	for _, e := range history {
		breakdown[e.ServiceType]++

		switch e.Status {
		case StatusCompleted:
			card.CompletedBookings++
			if e.PriceEstimate != nil {
				card.TotalRevenue += *e.PriceEstimate
			}
		case StatusCancelled:
			card.CancelledBookings++
		}

		if e.Conflicts != nil {
			card.ConflictNotes = append(card.ConflictNotes, noteWithDate(e, *e.Conflicts))
		}
		if e.Discount != nil {
			card.DiscountHistory = append(card.DiscountHistory, noteWithDate(e, *e.Discount))
		}
		if e.SpecialInstructions != nil {
			if _, seen := seenPreferences[*e.SpecialInstructions]; !seen {
				seenPreferences[*e.SpecialInstructions] = struct{}{}
				card.Preferences = append(card.Preferences, *e.SpecialInstructions)
			}
		}
	}
	card.ServiceBreakdown = breakdown
	card.HasConflicts = len(card.ConflictNotes) > 0

	if card.CompletedBookings > 0 {
		card.AverageBookingValue = card.TotalRevenue / float64(card.CompletedBookings)
	}
	card.LifetimeValue = card.TotalRevenue

	card.IsFastCustomer = breakdown[ServiceFast] > 0
	if card.IsFastCustomer {
		card.FastCleaningCount = breakdown[ServiceFast]
		if next := PredictNextBooking(history); next != nil {
			card.NextScheduledCleaning = next
			action := NextActionBookFast
			card.NextAction = &action
			card.NextActionDue = next
		}
	}

	if len(history) > 0 {
		first := history[len(history)-1].Date
		last := history[0].Date
		card.FirstSeen = &first
		card.LastActivity = &last
	}

	return card
}

func noteWithDate(e ServiceEvent, note string) string {
	return fmt.Sprintf("%s: %s", e.Date.Format("2006-01-02"), note)
}
