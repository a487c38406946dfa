package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// ModerationHandler handles the viewer-side moderation surface: hiding
// stories, blocking authors, and filing reports.
type ModerationHandler struct {
	moderation *engine.ModerationService
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(moderation *engine.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// RegisterModerationRoutes registers viewer moderation routes.
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.GET("/moderation", h.GetRecord)
	g.POST("/moderation/hidden/:story_id", h.HideStory)
	g.DELETE("/moderation/hidden/:story_id", h.UnhideStory)
	g.POST("/moderation/blocked/:user_id", h.BlockUser)
	g.DELETE("/moderation/blocked/:user_id", h.UnblockUser)
}

// RegisterReportRoutes registers the report-filing route.
func (h *ModerationHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.FileReport)
}

// GetRecord returns the viewer's hidden and blocked sets.
func (h *ModerationHandler) GetRecord(c echo.Context) error {
	record, err := h.moderation.Record(c.Request().Context(), getViewerID(c))
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, record)
}

// HideStory hides a single story from the viewer's feeds.
func (h *ModerationHandler) HideStory(c echo.Context) error {
	if err := h.moderation.HideStory(c.Request().Context(), getViewerID(c), c.Param("story_id")); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnhideStory restores a hidden story.
func (h *ModerationHandler) UnhideStory(c echo.Context) error {
	if err := h.moderation.UnhideStory(c.Request().Context(), getViewerID(c), c.Param("story_id")); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BlockUser blocks an author for the viewer.
func (h *ModerationHandler) BlockUser(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.moderation.BlockUser(c.Request().Context(), getViewerID(c), uint(targetID)); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnblockUser reverses a block.
func (h *ModerationHandler) UnblockUser(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.moderation.UnblockUser(c.Request().Context(), getViewerID(c), uint(targetID)); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// FileReport files a report against a story or user. The route sits behind
// a per-IP rate limit to absorb report spam.
func (h *ModerationHandler) FileReport(c echo.Context) error {
	var req models.FileReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.moderation.FileReport(c.Request().Context(), getViewerID(c), req)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusCreated, report)
}
