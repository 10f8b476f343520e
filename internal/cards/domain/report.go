package domain

import "slices"

// ReportSummary is the roll-up over a full customer set.
type ReportSummary struct {
	TotalCards           int                 `json:"totalCards"`
	FastCustomers        int                 `json:"fastCustomers"`
	WithConflicts        int                 `json:"withConflicts"`
	WithDiscounts        int                 `json:"withDiscounts"`
	TotalRevenue         float64             `json:"totalRevenue"`
	AverageCustomerValue float64             `json:"averageCustomerValue"`
	ServiceBreakdown     map[ServiceType]int `json:"serviceBreakdown"`
}

// RankCards orders cards by lifetime value, highest first. The sort is
// stable: equal values keep their input order.
func RankCards(cards []CustomerCard) []CustomerCard {
	ranked := make([]CustomerCard, len(cards))
	copy(ranked, cards)
	slices.SortStableFunc(ranked, func(a, b CustomerCard) int {
		switch {
		case a.LifetimeValue > b.LifetimeValue:
			return -1
		case a.LifetimeValue < b.LifetimeValue:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// Summarize computes the report statistics for a customer set. The average
// is zero for an empty set.
func Summarize(cards []CustomerCard) ReportSummary {
	summary := ReportSummary{
		TotalCards:       len(cards),
		ServiceBreakdown: make(map[ServiceType]int, len(AllServiceTypes)),
	}
	for _, t := range AllServiceTypes {
		summary.ServiceBreakdown[t] = 0
	}

	for _, card := range cards {
		if card.IsFastCustomer {
			summary.FastCustomers++
		}
		if card.HasConflicts {
			summary.WithConflicts++
		}
		if len(card.DiscountHistory) > 0 {
			summary.WithDiscounts++
		}
		summary.TotalRevenue += card.TotalRevenue
		for t, n := range card.ServiceBreakdown {
			summary.ServiceBreakdown[t] += n
		}
	}

	if len(cards) > 0 {
		summary.AverageCustomerValue = summary.TotalRevenue / float64(len(cards))
	}
	return summary
}
