package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractedFields holds every typed detail the extractor could find in one
// event's text. A nil pointer means the rule did not match; extraction never
// fails.
type ExtractedFields struct {
	PropertySize        *string
	TimeEstimate        *string
	TimeActual          *string
	PriceEstimate       *float64
	Address             *string
	AccessCode          *string
	Services            []string
	Conflicts           *string
	Discount            *string
	SpecialInstructions *string
}

var (
	sizeRe       = regexp.MustCompile(`(?i)(\d+)\s*m²`)
	timeRe       = regexp.MustCompile(`(?i)(\d+(?:-\d+)?)\s*timer`)
	actualTimeRe = regexp.MustCompile(`(?i)(\d+)\s*arbejdstimer`)
	priceRe      = regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*kr`)
	accessCodeRe = regexp.MustCompile(`(?i)(?:kode|code)[:\s]*(\d+)`)
	quotedRe     = regexp.MustCompile(`"([^"]+)"`)
	discountRe   = regexp.MustCompile(`(?i)rabat[^\n.]*`)
	keyNoteRe    = regexp.MustCompile(`(?i)nøgle[^\n.]*`)
)

// Address patterns are tried in order; the first match wins. The labelled
// prefix is preferred over the bare street-name heuristic.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:adr|adresse|lokation)[:\-]?\s*([^\n]+)`),
	regexp.MustCompile(`([A-ZÆØÅ][\wæøå]+(?:vej|gade|allé|alle|plads|vænget)[^\n,]{0,40})`),
}

// serviceKeywords maps a lowercase text fragment to the included-service tag
// it contributes. Tests are independent set-membership checks, not exclusive.
var serviceKeywords = []struct {
	keyword string
	tag     string
}{
	{"vindues", "Vinduespudsning"},
	{"gulv", "Gulvvask"},
	{"køkken", "Køkken"},
	{"bad", "Badeværelse"},
	{"støvsug", "Støvsugning"},
}

// Extract pulls typed fields from one event's title, description and
// optional structured location. It is total: any rule that does not match
// simply leaves its field absent.
func Extract(title, description, location string, cfg ExtractConfig) ExtractedFields {
	combined := title + " " + description
	lower := strings.ToLower(combined)

	var out ExtractedFields

	if m := sizeRe.FindStringSubmatch(combined); m != nil {
		size := m[1] + " m²"
		out.PropertySize = &size
	}

	if m := timeRe.FindStringSubmatch(combined); m != nil {
		est := m[1] + " timer"
		out.TimeEstimate = &est
	}

	if m := actualTimeRe.FindStringSubmatch(combined); m != nil {
		actual := m[1] + " timer"
		out.TimeActual = &actual
	}

	if m := priceRe.FindStringSubmatch(combined); m != nil {
		if price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			out.PriceEstimate = &price
		}
	}
	if out.PriceEstimate == nil && out.TimeEstimate != nil {
		// Derive from the duration estimate at the configured hourly rate,
		// taking the low end when a range like "3-4 timer" was given.
		lowEnd := strings.SplitN(strings.TrimSuffix(*out.TimeEstimate, " timer"), "-", 2)[0]
		if hours, err := strconv.ParseFloat(lowEnd, 64); err == nil {
			derived := hours * cfg.HourlyRate
			out.PriceEstimate = &derived
		}
	}

	if trimmed := strings.TrimSpace(location); trimmed != "" {
		out.Address = &trimmed
	} else {
		for _, pattern := range addressPatterns {
			if m := pattern.FindStringSubmatch(combined); m != nil {
				addr := strings.TrimSpace(m[1])
				out.Address = &addr
				break
			}
		}
	}

	if m := accessCodeRe.FindStringSubmatch(combined); m != nil {
		code := m[1]
		out.AccessCode = &code
	}

	for _, entry := range serviceKeywords {
		if strings.Contains(lower, entry.keyword) {
			out.Services = append(out.Services, entry.tag)
		}
	}

	if strings.Contains(lower, "sur") || strings.Contains(lower, "klage") {
		if m := quotedRe.FindStringSubmatch(combined); m != nil {
			conflict := m[1]
			out.Conflicts = &conflict
		}
	}

	if strings.Contains(lower, "rabat") {
		if m := discountRe.FindString(combined); m != "" {
			discount := m
			out.Discount = &discount
		}
	}

	out.SpecialInstructions = extractSpecialInstruction(combined, lower)

	return out
}

// extractSpecialInstruction checks a short ordered list of known phrases;
// the first match wins and only one instruction is kept per event.
func extractSpecialInstruction(combined, lower string) *string {
	switch {
	case strings.Contains(lower, "ingen sulfo"):
		s := "Ingen sulfo på trægulve"
		return &s
	case strings.Contains(lower, "svanemærket"):
		s := "Svanemærkede produkter"
		return &s
	case strings.Contains(lower, "nøgle"):
		if m := keyNoteRe.FindString(combined); m != "" {
			s := m
			return &s
		}
	}
	return nil
}
