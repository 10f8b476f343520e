// Command cardbuild runs the card pipeline once over a JSON file of raw
// customer profiles and writes the ranked cards as JSON. It needs no
// database or redis, which makes it handy for inspecting pipeline output
// against exported profile dumps.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"kundekort_backend/internal/cards/domain"
	"kundekort_backend/platform/logger"
	"kundekort_backend/platform/sanitize"
)

func main() {
	var (
		inPath     = flag.String("in", "-", "profiles JSON file, or - for stdin")
		outPath    = flag.String("out", "-", "cards JSON file, or - for stdout")
		hourlyRate = flag.Float64("hourly-rate", domain.DefaultHourlyRate, "hourly rate in DKK for derived prices")
	)
	flag.Parse()

	log := logger.New("development")

	if err := run(*inPath, *outPath, *hourlyRate, log); err != nil {
		log.Error("card build failed", "error", err)
		os.Exit(1)
	}
}

type output struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Summary     domain.ReportSummary  `json:"summary"`
	Cards       []domain.CustomerCard `json:"cards"`
}

func run(inPath, outPath string, hourlyRate float64, log *logger.Logger) error {
	profiles, err := readProfiles(inPath)
	if err != nil {
		return err
	}

	cfg := domain.ExtractConfig{HourlyRate: hourlyRate}
	now := time.Now()

	cards := make([]domain.CustomerCard, 0, len(profiles))
	for _, profile := range profiles {
		serviceEvents := make([]domain.ServiceEvent, 0, len(profile.CalendarEvents))
		for _, raw := range profile.CalendarEvents {
			raw.Title = sanitize.Text(raw.Title)
			raw.Description = sanitize.Text(raw.Description)
			serviceEvents = append(serviceEvents, domain.BuildServiceEvent(raw, cfg, now))
		}
		cards = append(cards, domain.AggregateCard(profile, serviceEvents))
	}

	ranked := domain.RankCards(cards)
	log.Info("cards built", "profiles", len(profiles), "cards", len(ranked))

	return writeOutput(outPath, output{
		GeneratedAt: now,
		Summary:     domain.Summarize(ranked),
		Cards:       ranked,
	})
}

func readProfiles(path string) ([]domain.RawProfile, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open profiles: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var profiles []domain.RawProfile
	if err := json.NewDecoder(reader).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func writeOutput(path string, out output) error {
	var writer io.Writer = os.Stdout
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		writer = file
	}

	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}
	return nil
}
