package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// StickerHandler handles the support-sticker exchange.
type StickerHandler struct {
	stickers *engine.StickerService
	catalog  []models.StickerOption
}

// NewStickerHandler creates a new StickerHandler.
func NewStickerHandler(stickers *engine.StickerService, catalog []models.StickerOption) *StickerHandler {
	return &StickerHandler{stickers: stickers, catalog: catalog}
}

// RegisterStickerRoutes registers sticker routes.
func (h *StickerHandler) RegisterStickerRoutes(g *echo.Group) {
	g.POST("/stories/:id/stickers", h.SendSticker)
	g.GET("/stickers/catalog", h.GetCatalog)
}

// SendSticker settles one sticker from the viewer onto a story.
func (h *StickerHandler) SendSticker(c echo.Context) error {
	var req models.SendStickerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	receipt, err := h.stickers.Send(c.Request().Context(), c.Param("id"), getViewerID(c), req.Emoji, req.Message)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

// GetCatalog returns the injected sticker catalog.
func (h *StickerHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"stickers": h.catalog})
}
