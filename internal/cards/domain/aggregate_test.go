package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func completedFast(date time.Time, price float64) ServiceEvent {
	p := price
	return ServiceEvent{
		Date:          date,
		ServiceType:   ServiceFast,
		ServiceName:   ServiceFast.DisplayName(),
		Status:        StatusCompleted,
		PriceEstimate: &p,
		HourlyRate:    DefaultHourlyRate,
	}
}

func TestAggregateCardCounts(t *testing.T) {
	profile := RawProfile{ID: "P1", Name: "Mette Hansen"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	events := []ServiceEvent{
		completedFast(base, 1047),
		completedFast(base.AddDate(0, 0, 21), 1047),
		{Date: base.AddDate(0, 0, 30), ServiceType: ServiceHoved, Status: StatusCancelled},
		{Date: base.AddDate(0, 0, 60), ServiceType: ServicePrivat, Status: StatusPlanned},
	}

	card := AggregateCard(profile, events)

	if card.TotalBookings != 4 || card.CompletedBookings != 2 || card.CancelledBookings != 1 {
		t.Fatalf("counts = %d/%d/%d, want 4/2/1",
			card.TotalBookings, card.CompletedBookings, card.CancelledBookings)
	}
	if card.ServiceBreakdown[ServiceFast] != 2 || card.ServiceBreakdown[ServiceHoved] != 1 ||
		card.ServiceBreakdown[ServicePrivat] != 1 || card.ServiceBreakdown[ServiceErhverv] != 0 {
		t.Fatalf("unexpected breakdown: %v", card.ServiceBreakdown)
	}

	var breakdownTotal int
	for _, n := range card.ServiceBreakdown {
		breakdownTotal += n
	}
	if breakdownTotal != len(card.ServiceHistory) {
		t.Fatalf("breakdown total %d != history length %d", breakdownTotal, len(card.ServiceHistory))
	}
}

func TestAggregateCardRevenueCompletedOnly(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 999.0

	events := []ServiceEvent{
		completedFast(base, 1047),
		completedFast(base.AddDate(0, 0, 21), 500),
		{Date: base.AddDate(0, 0, 30), ServiceType: ServiceHoved, Status: StatusCancelled, PriceEstimate: &price},
		{Date: base.AddDate(0, 0, 40), ServiceType: ServicePrivat, Status: StatusPlanned, PriceEstimate: &price},
	}

	card := AggregateCard(RawProfile{ID: "P1"}, events)

	// Round-trip check: sum over completed events must match exactly.
	var want float64
	for _, e := range card.ServiceHistory {
		if e.Status == StatusCompleted && e.PriceEstimate != nil {
			want += *e.PriceEstimate
		}
	}
	if card.TotalRevenue != want || card.TotalRevenue != 1547 {
		t.Fatalf("totalRevenue = %v, want %v", card.TotalRevenue, want)
	}
	if card.LifetimeValue != card.TotalRevenue {
		t.Fatalf("lifetimeValue = %v, want %v", card.LifetimeValue, card.TotalRevenue)
	}
	if card.AverageBookingValue != 1547.0/2 {
		t.Fatalf("averageBookingValue = %v", card.AverageBookingValue)
	}
}

func TestAggregateCardEmptyProfile(t *testing.T) {
	card := AggregateCard(RawProfile{ID: "P1", Name: "Tom"}, nil)

	if card.TotalBookings != 0 || card.TotalRevenue != 0 || card.AverageBookingValue != 0 {
		t.Fatalf("expected zeroed card, got %+v", card)
	}
	if card.NextAction != nil || card.NextActionDue != nil {
		t.Fatal("expected absent next action")
	}
	if card.FirstSeen != nil || card.LastActivity != nil {
		t.Fatal("expected absent activity dates")
	}
	if card.IsFastCustomer {
		t.Fatal("empty profile cannot be a fast customer")
	}
}

func TestAggregateCardZeroCompletedAverageGuard(t *testing.T) {
	events := []ServiceEvent{
		{Date: time.Now(), ServiceType: ServicePrivat, Status: StatusCancelled},
	}

	card := AggregateCard(RawProfile{ID: "P1"}, events)

	if card.AverageBookingValue != 0 {
		t.Fatalf("averageBookingValue = %v, want 0", card.AverageBookingValue)
	}
}

func TestAggregateCardNotesAndPreferences(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	conflict := "gulvet var stadig beskidt"
	discount := "rabat pga forsinkelse"
	pref := "Svanemærkede produkter"

	events := []ServiceEvent{
		{Date: base, ServiceType: ServicePrivat, Status: StatusCompleted, Conflicts: &conflict},
		{Date: base.AddDate(0, 1, 0), ServiceType: ServicePrivat, Status: StatusCompleted, Discount: &discount, SpecialInstructions: &pref},
		{Date: base.AddDate(0, 2, 0), ServiceType: ServicePrivat, Status: StatusCompleted, SpecialInstructions: &pref},
	}

	card := AggregateCard(RawProfile{ID: "P1"}, events)

	if !card.HasConflicts || len(card.ConflictNotes) != 1 {
		t.Fatalf("conflict notes = %v", card.ConflictNotes)
	}
	if !strings.HasPrefix(card.ConflictNotes[0], "2024-01-01: ") {
		t.Fatalf("conflict note missing date prefix: %q", card.ConflictNotes[0])
	}
	if len(card.DiscountHistory) != 1 || !strings.Contains(card.DiscountHistory[0], "rabat") {
		t.Fatalf("discount history = %v", card.DiscountHistory)
	}
	if len(card.Preferences) != 1 || card.Preferences[0] != pref {
		t.Fatalf("preferences not deduplicated: %v", card.Preferences)
	}
}

func TestAggregateCardNextActionForFastCustomer(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []ServiceEvent{
		completedFast(base, 1047),
		completedFast(base.AddDate(0, 0, 21), 1047),
	}

	card := AggregateCard(RawProfile{ID: "P1"}, events)

	if !card.IsFastCustomer || card.FastCleaningCount != 2 {
		t.Fatalf("fast tracking = %v/%d", card.IsFastCustomer, card.FastCleaningCount)
	}
	if card.NextScheduledCleaning == nil {
		t.Fatal("expected next cleaning prediction")
	}
	want := time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)
	if !card.NextScheduledCleaning.Equal(want) {
		t.Fatalf("next cleaning %s, want %s", card.NextScheduledCleaning, want)
	}
	if card.NextAction == nil || *card.NextAction != NextActionBookFast {
		t.Fatalf("nextAction = %v", card.NextAction)
	}
	if card.NextActionDue == nil || !card.NextActionDue.Equal(want) {
		t.Fatalf("nextActionDue = %v", card.NextActionDue)
	}
}

func TestAggregateCardIdentityFields(t *testing.T) {
	profile := RawProfile{
		ID:              "P1",
		Name:            "Restaurant Smagsløget",
		Emails:          []string{"kontakt@smagsloeget.dk", "faktura@smagsloeget.dk"},
		Phones:          []string{"+45 20 12 34 56"},
		Addresses:       []string{"Vesterbrogade 1, København"},
		Companies:       []string{"Smagsløget ApS"},
		BillyCustomerID: "billy-123",
		Sources:         []string{"calendar", "gmail"},
		Confidence:      0.92,
	}

	card := AggregateCard(profile, nil)

	if card.PrimaryEmail == nil || *card.PrimaryEmail != "kontakt@smagsloeget.dk" {
		t.Fatalf("primaryEmail = %v", card.PrimaryEmail)
	}
	if card.PrimaryPhone == nil || *card.PrimaryPhone != "+4520123456" {
		t.Fatalf("primaryPhone = %v, want E.164", card.PrimaryPhone)
	}
	if card.BillyCustomerID == nil || *card.BillyCustomerID != "billy-123" {
		t.Fatalf("billyCustomerId = %v", card.BillyCustomerID)
	}
	if card.BillyCompany == nil || *card.BillyCompany != "Smagsløget ApS" {
		t.Fatalf("billyCompany = %v", card.BillyCompany)
	}
	if card.Confidence != 0.92 {
		t.Fatalf("confidence = %v", card.Confidence)
	}
}

func TestAggregateCardIdempotent(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := RawProfile{ID: "P1", Name: "Mette Hansen", Emails: []string{"mette@example.dk"}}
	events := []ServiceEvent{
		completedFast(base, 1047),
		completedFast(base.AddDate(0, 0, 21), 1047),
		{Date: base.AddDate(0, 0, 30), ServiceType: ServiceHoved, Status: StatusCancelled},
	}

	first, err := json.Marshal(AggregateCard(profile, events))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(AggregateCard(profile, events))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("aggregation over immutable input is not idempotent")
	}
}
