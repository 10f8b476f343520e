package domain

import (
	"testing"
	"time"
)

func fastEvent(date time.Time, status Status) ServiceEvent {
	return ServiceEvent{
		ID:          "EVENT_" + date.Format(time.RFC3339) + "_" + string(ServiceFast),
		Date:        date,
		ServiceType: ServiceFast,
		Status:      status,
	}
}

func TestPredictNextBookingAveragesGaps(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)

	next := PredictNextBooking([]ServiceEvent{
		fastEvent(first, StatusCompleted),
		fastEvent(second, StatusCompleted),
	})
	if next == nil {
		t.Fatal("expected a prediction from two completed events")
	}

	want := time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("predicted %s, want %s", next.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestPredictNextBookingIrregularIntervals(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []ServiceEvent{
		fastEvent(base, StatusCompleted),
		fastEvent(base.AddDate(0, 0, 14), StatusCompleted),
		fastEvent(base.AddDate(0, 0, 14+28), StatusCompleted),
	}

	next := PredictNextBooking(events)
	if next == nil {
		t.Fatal("expected a prediction")
	}

	// Gaps of 14 and 28 days average to 21.
	want := base.AddDate(0, 0, 14+28+21)
	if !next.Equal(want) {
		t.Fatalf("predicted %s, want %s", next.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestPredictNextBookingInsufficientHistory(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		events []ServiceEvent
	}{
		{"no events", nil},
		{"single completed event", []ServiceEvent{fastEvent(date, StatusCompleted)}},
		{"cancelled events do not count", []ServiceEvent{
			fastEvent(date, StatusCompleted),
			fastEvent(date.AddDate(0, 0, 21), StatusCancelled),
		}},
		{"other service types do not count", []ServiceEvent{
			fastEvent(date, StatusCompleted),
			{Date: date.AddDate(0, 0, 21), ServiceType: ServiceHoved, Status: StatusCompleted},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if next := PredictNextBooking(tc.events); next != nil {
				t.Fatalf("expected absent prediction, got %s", next.Format("2006-01-02"))
			}
		})
	}
}

func TestPredictNextBookingOrderIndependent(t *testing.T) {
	a := fastEvent(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StatusCompleted)
	b := fastEvent(time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), StatusCompleted)

	fromSorted := PredictNextBooking([]ServiceEvent{a, b})
	fromReversed := PredictNextBooking([]ServiceEvent{b, a})

	if fromSorted == nil || fromReversed == nil {
		t.Fatal("expected predictions for both orderings")
	}
	if !fromSorted.Equal(*fromReversed) {
		t.Fatalf("order-dependent prediction: %s vs %s", fromSorted, fromReversed)
	}
}
