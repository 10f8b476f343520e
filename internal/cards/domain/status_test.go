package domain

import (
	"testing"
	"time"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	cases := []struct {
		name        string
		title       string
		description string
		date        time.Time
		want        Status
	}{
		{"checkmark marker", "✅ Flytterengøring udført", "", future, StatusCompleted},
		{"udført marker", "Hovedrengøring UDFØRT", "", future, StatusCompleted},
		{"cross marker", "❌ Fast rengøring", "", past, StatusCancelled},
		{"aflyst marker", "AFLYST rengøring", "", past, StatusCancelled},
		{"rebook title marker", "OMBOOKET til næste uge", "", past, StatusRebooked},
		{"rebook in description", "Fast rengøring", "Rebooket efter aftale", past, StatusRebooked},
		{"past defaults to completed", "Fast rengøring", "", past, StatusCompleted},
		{"future defaults to planned", "Fast rengøring", "", future, StatusPlanned},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveStatus(tc.title, tc.description, tc.date, now)
			if got != tc.want {
				t.Fatalf("ResolveStatus(%q, %q) = %s, want %s", tc.title, tc.description, got, tc.want)
			}
		})
	}
}

func TestResolveStatusMarkerBeatsDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// An explicitly cancelled future event must not revert to planned.
	got := ResolveStatus("❌ AFLYST: Hovedrengøring", "", now.AddDate(0, 2, 0), now)
	if got != StatusCancelled {
		t.Fatalf("future cancelled event resolved to %s", got)
	}

	// A done marker wins even for a future-dated event.
	got = ResolveStatus("✅ Fast rengøring", "", now.AddDate(0, 0, 3), now)
	if got != StatusCompleted {
		t.Fatalf("future completed event resolved to %s", got)
	}
}
