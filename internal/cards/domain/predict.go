package domain

import (
	"slices"
	"time"
)

// PredictNextBooking estimates when a recurring customer's next fast
// rengøring falls, from the spacing of their completed fast events. With
// fewer than two completed events there is no interval to learn from and
// the prediction is absent; that is policy, not an error.
//
// The estimate is the mean of the historical day gaps added to the most
// recent completed event. It carries no confidence bound.
func PredictNextBooking(events []ServiceEvent) *time.Time {
	var fast []ServiceEvent
	for _, e := range events {
		if e.ServiceType == ServiceFast && e.Status == StatusCompleted {
			fast = append(fast, e)
		}
	}
	if len(fast) < 2 {
		return nil
	}

	slices.SortStableFunc(fast, func(a, b ServiceEvent) int {
		return b.Date.Compare(a.Date)
	})

	var totalDays float64
	for i := 0; i < len(fast)-1; i++ {
		days := fast[i].Date.Sub(fast[i+1].Date).Hours() / 24
		if days < 0 {
			days = -days
		}
		totalDays += days
	}
	avgDays := totalDays / float64(len(fast)-1)

	next := fast[0].Date.Add(time.Duration(avgDays * 24 * float64(time.Hour)))
	return &next
}
