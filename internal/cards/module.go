// Package cards provides the customer card bounded context module.
// This file defines the module that encapsulates all cards setup and route registration.
package cards

import (
	"kundekort_backend/internal/cards/cache"
	"kundekort_backend/internal/cards/handler"
	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/internal/cards/service"
	"kundekort_backend/internal/events"
	apphttp "kundekort_backend/internal/http"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"
	"kundekort_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the cards bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the cards module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)

	reportCache, err := cache.NewFromURL(cfg.GetRedisURL(), cfg.GetReportCacheTTL())
	if err != nil {
		return nil, err
	}

	svc := service.New(repo, reportCache, eventBus, log, cfg.GetHourlyRate())
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cards"
}

// Service returns the cards service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the cards repository for external use.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts cards routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All card routes require authentication
	cardsGroup := ctx.Protected.Group("/cards")
	m.handler.RegisterRoutes(cardsGroup)

	adminGroup := ctx.Admin.Group("/cards")
	m.handler.RegisterAdminRoutes(adminGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
