package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// DraftHandler handles the per-device composition draft slot.
type DraftHandler struct {
	drafts *engine.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts *engine.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// RegisterDraftRoutes registers draft routes. All of them key on the
// device header rather than the viewer ID.
func (h *DraftHandler) RegisterDraftRoutes(g *echo.Group) {
	g.GET("/draft", h.GetDraft)
	g.GET("/draft/exists", h.HasDraft)
	g.PUT("/draft", h.SaveDraft)
	g.DELETE("/draft", h.DeleteDraft)
}

func (h *DraftHandler) deviceID(c echo.Context) (string, error) {
	deviceID := getDeviceID(c)
	if deviceID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Missing X-Device-ID header")
	}
	return deviceID, nil
}

// GetDraft returns the live draft, or 404 when the slot is empty or the
// draft has expired.
func (h *DraftHandler) GetDraft(c echo.Context) error {
	deviceID, err := h.deviceID(c)
	if err != nil {
		return err
	}

	draft, err := h.drafts.Load(c.Request().Context(), deviceID)
	if err != nil {
		return engineError(err)
	}
	if draft == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No saved draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// HasDraft reports whether a live draft occupies the slot.
func (h *DraftHandler) HasDraft(c echo.Context) error {
	deviceID, err := h.deviceID(c)
	if err != nil {
		return err
	}

	exists, err := h.drafts.Has(c.Request().Context(), deviceID)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

// SaveDraft writes the single draft slot. Without the overwrite flag the
// request is rejected when a live draft already exists.
func (h *DraftHandler) SaveDraft(c echo.Context) error {
	deviceID, err := h.deviceID(c)
	if err != nil {
		return err
	}

	var req models.SaveDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	draft, err := h.drafts.Save(c.Request().Context(), deviceID, models.Draft{
		FeedType:   req.FeedType,
		Content:    req.Content,
		Categories: req.Categories,
		IsPublic:   isPublic,
	}, req.Overwrite)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, draft)
}

// DeleteDraft discards the draft slot.
func (h *DraftHandler) DeleteDraft(c echo.Context) error {
	deviceID, err := h.deviceID(c)
	if err != nil {
		return err
	}

	if err := h.drafts.Delete(c.Request().Context(), deviceID); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
