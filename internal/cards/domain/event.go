package domain

import (
	"fmt"
	"slices"
	"time"
)

// rawDescriptionLimit bounds the stored description preview, in runes.
const rawDescriptionLimit = 300

// BuildServiceEvent turns one raw calendar entry into an immutable service
// event by running classification, field extraction and status resolution.
// There is no error path: an empty or malformed description yields an event
// with most optional fields absent.
func BuildServiceEvent(raw RawEvent, cfg ExtractConfig, now time.Time) ServiceEvent {
	cls := Classify(raw.Title, raw.Description)
	fields := Extract(raw.Title, raw.Description, raw.Location, cfg)
	status := ResolveStatus(raw.Title, raw.Description, raw.Start, now)

	return ServiceEvent{
		ID:          fmt.Sprintf("EVENT_%s_%s", raw.Start.Format(time.RFC3339), cls.Type),
		Date:        raw.Start,
		Title:       raw.Title,
		ServiceType: cls.Type,
		ServiceName: cls.Name,
		IsFirstTime: cls.IsFirstTime,

		PropertySize:  fields.PropertySize,
		TimeEstimate:  fields.TimeEstimate,
		TimeActual:    fields.TimeActual,
		PriceEstimate: fields.PriceEstimate,
		HourlyRate:    cfg.HourlyRate,

		Address:    fields.Address,
		AccessCode: fields.AccessCode,

		Services:       fields.Services,
		WindowCleaning: slices.Contains(fields.Services, "Vinduespudsning"),

		Status: status,

		Conflicts:           fields.Conflicts,
		Discount:            fields.Discount,
		SpecialInstructions: fields.SpecialInstructions,

		RawDescription: truncateRunes(raw.Description, rawDescriptionLimit),
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
