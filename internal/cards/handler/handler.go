package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kundekort_backend/internal/cards/service"
	"kundekort_backend/internal/cards/transport"
	"kundekort_backend/platform/apperr"
	"kundekort_backend/platform/httpkit"
	"kundekort_backend/platform/logger"
	"kundekort_backend/platform/validator"
)

// Handler handles HTTP requests for customer cards.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new customer cards handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// List retrieves customer cards ranked by lifetime value.
// GET /api/v1/cards
func (h *Handler) List(c *gin.Context) {
	var req transport.ListCardsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed, err.Error()))
		return
	}

	result, err := h.svc.ListCards(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves one full customer card.
// GET /api/v1/cards/:id
func (h *Handler) Get(c *gin.Context) {
	profileID := c.Param("id")
	if profileID == "" {
		httpkit.Error(c, http.StatusBadRequest, "profile ID is required", nil)
		return
	}

	card, err := h.svc.GetCard(c.Request.Context(), profileID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, card)
}

// Report retrieves the customer-set report.
// GET /api/v1/cards/report
func (h *Handler) Report(c *gin.Context) {
	result, err := h.svc.GetReport(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Rebuild recomputes every customer card from the raw profiles (admin only).
// POST /api/v1/admin/cards/rebuild
func (h *Handler) Rebuild(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	h.log.Info("card rebuild requested", "user_id", identity.UserID().String())

	result, err := h.svc.Rebuild(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RegisterRoutes mounts card routes on the given protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/report", h.Report)
	rg.GET("/:id", h.Get)
}

// RegisterAdminRoutes mounts admin-only card routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/rebuild", h.Rebuild)
}
