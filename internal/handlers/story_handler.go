package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// StoryHandler handles story authoring HTTP requests.
type StoryHandler struct {
	stories *engine.StoryService
	drafts  *engine.DraftService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(stories *engine.StoryService, drafts *engine.DraftService) *StoryHandler {
	return &StoryHandler{stories: stories, drafts: drafts}
}

// RegisterStoryRoutes registers story authoring routes.
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.PUT("/stories/:id", h.UpdateStory)
	g.DELETE("/stories/:id", h.DeleteStory)
	g.GET("/me/stories", h.GetMyStories)
}

// CreateStory posts a new story and clears the device's draft slot on
// success.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.stories.Create(c.Request().Context(), getViewerID(c), req)
	if err != nil {
		return engineError(err)
	}

	if deviceID := getDeviceID(c); deviceID != "" {
		_ = h.drafts.Delete(c.Request().Context(), deviceID)
	}

	return c.JSON(http.StatusCreated, story)
}

// UpdateStory edits an owned story's content and categories.
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	var req models.UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.stories.Update(c.Request().Context(), c.Param("id"), getViewerID(c), req)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, story)
}

// DeleteStory removes an owned story.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	if err := h.stories.Delete(c.Request().Context(), c.Param("id"), getViewerID(c)); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetMyStories lists the viewer's own stories for the profile view.
func (h *StoryHandler) GetMyStories(c echo.Context) error {
	order := engine.SortNewest
	if c.QueryParam("sort") == "empathy" {
		order = engine.SortEmpathy
	}

	stories, err := h.stories.ListMine(c.Request().Context(), getViewerID(c), order)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": stories})
}
