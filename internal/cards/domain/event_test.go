package domain

import (
	"strings"
	"testing"
	"time"
)

func TestBuildServiceEventFastFirstTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := RawEvent{
		Title:       "Fast rengøring hos Mette",
		Description: "Fast rengøring #1, 45 m², 3 timer",
		Start:       time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
	}

	event := BuildServiceEvent(raw, DefaultExtractConfig(), now)

	if event.ServiceType != ServiceFast {
		t.Fatalf("serviceType = %s, want %s", event.ServiceType, ServiceFast)
	}
	if event.IsFirstTime == nil || !*event.IsFirstTime {
		t.Fatal("expected isFirstTime = true")
	}
	if event.PropertySize == nil || *event.PropertySize != "45 m²" {
		t.Fatalf("propertySize = %v, want 45 m²", event.PropertySize)
	}
	if event.TimeEstimate == nil || *event.TimeEstimate != "3 timer" {
		t.Fatalf("timeEstimate = %v, want 3 timer", event.TimeEstimate)
	}
	if event.PriceEstimate == nil || *event.PriceEstimate != 1047 {
		t.Fatalf("priceEstimate = %v, want 1047", event.PriceEstimate)
	}
	if event.HourlyRate != DefaultHourlyRate {
		t.Fatalf("hourlyRate = %v, want %v", event.HourlyRate, DefaultHourlyRate)
	}
	if event.Status != StatusCompleted {
		t.Fatalf("past event without marker should be completed, got %s", event.Status)
	}
}

func TestBuildServiceEventStableID(t *testing.T) {
	raw := RawEvent{
		Title: "✅ Flytterengøring udført",
		Start: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	event := BuildServiceEvent(raw, DefaultExtractConfig(), now)

	want := "EVENT_2024-03-10T08:00:00Z_REN-003"
	if event.ID != want {
		t.Fatalf("id = %q, want %q", event.ID, want)
	}
	if event.Status != StatusCompleted {
		t.Fatalf("done marker should win over future date, got %s", event.Status)
	}

	again := BuildServiceEvent(raw, DefaultExtractConfig(), now)
	if again.ID != event.ID {
		t.Fatalf("id not stable: %q vs %q", again.ID, event.ID)
	}
}

func TestBuildServiceEventTruncatesDescription(t *testing.T) {
	raw := RawEvent{
		Title:       "Rengøring",
		Description: strings.Repeat("æ", 400),
		Start:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	event := BuildServiceEvent(raw, DefaultExtractConfig(), time.Now())

	if got := len([]rune(event.RawDescription)); got != 300 {
		t.Fatalf("raw description preview is %d runes, want 300", got)
	}
}

func TestBuildServiceEventEmptyDescription(t *testing.T) {
	raw := RawEvent{
		Title: "Rengøring",
		Start: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	event := BuildServiceEvent(raw, DefaultExtractConfig(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if event.ServiceType != ServicePrivat {
		t.Fatalf("default classification = %s, want %s", event.ServiceType, ServicePrivat)
	}
	if event.Status != StatusPlanned {
		t.Fatalf("future unmarked event = %s, want %s", event.Status, StatusPlanned)
	}
	if event.PriceEstimate != nil || event.PropertySize != nil || event.Address != nil {
		t.Fatal("expected optional fields absent for empty description")
	}
	if event.WindowCleaning {
		t.Fatal("windowCleaning should be false without a window keyword")
	}
}

func TestBuildServiceEventWindowCleaningFlag(t *testing.T) {
	raw := RawEvent{
		Title:       "Hovedrengøring",
		Description: "Inkl. vinduespudsning",
		Start:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	event := BuildServiceEvent(raw, DefaultExtractConfig(), time.Now())

	if !event.WindowCleaning {
		t.Fatal("expected windowCleaning flag")
	}
}
