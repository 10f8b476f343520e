// Package service orchestrates the cards pipeline: loading raw profiles,
// folding them into customer cards, persisting and reporting the result.
package service

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"kundekort_backend/internal/cards/cache"
	"kundekort_backend/internal/cards/domain"
	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/internal/cards/transport"
	"kundekort_backend/internal/events"
	"kundekort_backend/platform/logger"
	"kundekort_backend/platform/sanitize"
)

// topCustomerCount bounds the report's top-customer listing.
const topCustomerCount = 10

// Service provides business logic for the cards module.
type Service struct {
	repo        repository.Repository
	reportCache *cache.ReportCache
	bus         events.Bus
	log         *logger.Logger
	extractCfg  domain.ExtractConfig
	now         func() time.Time
}

// New creates a new cards service.
func New(repo repository.Repository, reportCache *cache.ReportCache, bus events.Bus, log *logger.Logger, hourlyRate float64) *Service {
	return &Service{
		repo:        repo,
		reportCache: reportCache,
		bus:         bus,
		log:         log,
		extractCfg:  domain.ExtractConfig{HourlyRate: hourlyRate},
		now:         time.Now,
	}
}

// Rebuild recomputes every customer card from the stored raw profiles.
//
// Each profile's fold depends only on that profile's own events, so the
// folds run in parallel with no shared state; results land in a
// preallocated slice by index. Ranking is the single join point.
func (s *Service) Rebuild(ctx context.Context) (transport.RebuildResponse, error) {
	started := s.now()

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return transport.RebuildResponse{}, err
	}

	cards := make([]domain.CustomerCard, len(profiles))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	now := s.now()
	for i, profile := range profiles {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			cards[i] = s.buildCard(profile, now)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return transport.RebuildResponse{}, err
	}

	ranked := domain.RankCards(cards)
	if err := s.repo.ReplaceCards(ctx, ranked); err != nil {
		return transport.RebuildResponse{}, err
	}

	summary := domain.Summarize(ranked)
	if err := s.reportCache.Set(ctx, cache.Report{GeneratedAt: now, Summary: summary}); err != nil {
		// The cache is an optimization; a failed write must not fail the run.
		s.log.Warn("report cache write failed", "error", err)
	}

	durationMs := float64(s.now().Sub(started).Milliseconds())
	s.log.PipelineRun(len(profiles), len(ranked), durationMs)

	s.bus.Publish(ctx, events.CardsRebuilt{
		BaseEvent:    events.NewBaseEvent(),
		Profiles:     len(profiles),
		Cards:        len(ranked),
		TotalRevenue: summary.TotalRevenue,
	})

	return transport.RebuildResponse{
		Profiles:     len(profiles),
		Cards:        len(ranked),
		TotalRevenue: summary.TotalRevenue,
		DurationMs:   durationMs,
	}, nil
}

// buildCard folds one profile. Calendar text is sanitized before extraction
// because upstream descriptions may carry HTML markup.
func (s *Service) buildCard(profile domain.RawProfile, now time.Time) domain.CustomerCard {
	serviceEvents := make([]domain.ServiceEvent, 0, len(profile.CalendarEvents))
	for _, raw := range profile.CalendarEvents {
		raw.Title = sanitize.Text(raw.Title)
		raw.Description = sanitize.Text(raw.Description)
		serviceEvents = append(serviceEvents, domain.BuildServiceEvent(raw, s.extractCfg, now))
	}
	return domain.AggregateCard(profile, serviceEvents)
}

// ListCards retrieves cards with search and pagination, ranked by lifetime
// value.
func (s *Service) ListCards(ctx context.Context, req transport.ListCardsRequest) (transport.CardListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	cards, total, err := s.repo.ListCards(ctx, repository.ListCardsParams{
		Search:   req.Search,
		FastOnly: req.FastOnly,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return transport.CardListResponse{}, err
	}

	return transport.CardListResponse{
		Items:    transport.ToCardSummaries(cards),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetCard retrieves one full customer card.
func (s *Service) GetCard(ctx context.Context, profileID string) (domain.CustomerCard, error) {
	return s.repo.GetCard(ctx, profileID)
}

// GetReport returns the customer-set report, preferring the cached summary
// and recomputing from the stored cards on a miss.
func (s *Service) GetReport(ctx context.Context) (transport.ReportResponse, error) {
	cards, err := s.repo.ListAllCards(ctx)
	if err != nil {
		return transport.ReportResponse{}, err
	}

	top := cards
	if len(top) > topCustomerCount {
		top = top[:topCustomerCount]
	}

	if cached, ok, err := s.reportCache.Get(ctx); err == nil && ok {
		return transport.ReportResponse{
			GeneratedAt:  cached.GeneratedAt,
			Summary:      cached.Summary,
			TopCustomers: transport.ToCardSummaries(top),
		}, nil
	} else if err != nil {
		s.log.Warn("report cache read failed", "error", err)
	}

	return transport.ReportResponse{
		GeneratedAt:  s.now(),
		Summary:      domain.Summarize(cards),
		TopCustomers: transport.ToCardSummaries(top),
	}, nil
}
