package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// AdminHandler handles the report triage queue.
type AdminHandler struct {
	moderation *engine.ModerationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(moderation *engine.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// RegisterAdminRoutes registers triage routes. The group must carry admin
// authentication.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/reports", h.ListReports)
	g.POST("/reports/:id/resolve", h.ResolveReport)
	g.POST("/reports/:id/dismiss", h.DismissReport)
}

// ListReports returns the triage queue, optionally filtered by status.
func (h *AdminHandler) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", models.ReportStatusPending, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown report status")
	}

	reports, err := h.moderation.ListReports(c.Request().Context(), status)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

// ResolveReport marks a pending report resolved.
func (h *AdminHandler) ResolveReport(c echo.Context) error {
	report, err := h.moderation.TriageReport(c.Request().Context(), c.Param("id"), models.ReportStatusResolved)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// DismissReport marks a pending report dismissed.
func (h *AdminHandler) DismissReport(c echo.Context) error {
	report, err := h.moderation.TriageReport(c.Request().Context(), c.Param("id"), models.ReportStatusDismissed)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, report)
}
