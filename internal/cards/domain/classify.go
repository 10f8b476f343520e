package domain

import (
	"regexp"
	"strings"
)

// Classification is the result of assigning a service type to one event.
type Classification struct {
	Type ServiceType
	Name string
	// IsFirstTime is set only for fast rengøring.
	IsFirstTime *bool
}

// firstTimeRe matches the markers of a customer's first recurring visit:
// an occurrence counter, an explicit first-time phrase, or the "grundig"
// qualifier used for the thorough initial clean.
var firstTimeRe = regexp.MustCompile(`(?i)#1|første gang|first time|grundig`)

var erhvervKeywords = []string{"restaurant", "erhverv", "kontor", "forretning"}

// Classify assigns exactly one service type to an event based on its title
// and description. The rules are evaluated in priority order and the
// function is total: when nothing matches it falls back to privatrengøring
// rather than reporting no match.
func Classify(title, description string) Classification {
	combined := strings.ToLower(title + " " + description)

	if strings.Contains(combined, "fast rengøring") {
		isFirstTime := firstTimeRe.MatchString(combined)
		return Classification{
			Type:        ServiceFast,
			Name:        ServiceFast.DisplayName(),
			IsFirstTime: &isFirstTime,
		}
	}

	if strings.Contains(combined, "flytte") {
		return Classification{Type: ServiceFlyt, Name: ServiceFlyt.DisplayName()}
	}

	if strings.Contains(combined, "hoved") {
		return Classification{Type: ServiceHoved, Name: ServiceHoved.DisplayName()}
	}

	for _, keyword := range erhvervKeywords {
		if strings.Contains(combined, keyword) {
			return Classification{Type: ServiceErhverv, Name: ServiceErhverv.DisplayName()}
		}
	}

	return Classification{Type: ServicePrivat, Name: ServicePrivat.DisplayName()}
}
