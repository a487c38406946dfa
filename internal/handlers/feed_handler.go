package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// FeedHandler handles feed composition HTTP requests.
type FeedHandler struct {
	composer   *engine.FeedComposer
	stories    repositories.StoryRepository
	moderation *engine.ModerationService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(composer *engine.FeedComposer, stories repositories.StoryRepository, moderation *engine.ModerationService) *FeedHandler {
	return &FeedHandler{composer: composer, stories: stories, moderation: moderation}
}

// RegisterFeedRoutes registers feed routes.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed composes the viewer's visible feed for the requested tab. The
// feed is recomputed from the full story collection on every read.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := getViewerID(c)

	tab := engine.Tab(c.QueryParam("tab"))
	switch tab {
	case engine.TabWorry, engine.TabGrateful, engine.TabEmpathized:
	case "":
		tab = engine.TabWorry
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown feed tab")
	}

	var categories []string
	if raw := c.QueryParam("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	order := engine.SortNewest
	if c.QueryParam("sort") == "empathy" {
		order = engine.SortEmpathy
	}

	stories, err := h.stories.GetAllStories(c.Request().Context())
	if err != nil {
		return engineError(err)
	}

	record, err := h.moderation.Record(c.Request().Context(), viewerID)
	if err != nil {
		return engineError(err)
	}

	items := h.composer.Compose(stories, viewerID, tab, categories, record, order)
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
