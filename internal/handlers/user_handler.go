package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// UserHandler handles account and profile HTTP requests.
type UserHandler struct {
	profiles *engine.ProfileService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profiles *engine.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// RegisterSignupRoutes registers the unauthenticated signup route.
func (h *UserHandler) RegisterSignupRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
}

// RegisterProfileRoutes registers profile routes.
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me/profile", h.UpdateProfile)
}

// Signup creates a new account profile.
func (h *UserHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.profiles.Signup(req)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetMe returns the acting viewer's profile.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.profiles.Get(getViewerID(c))
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a gated profile mutation. Ineligible fields are
// skipped and reported with their remaining cooldown; eligible fields in
// the same request still commit.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.profiles.Update(getViewerID(c), req)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, result)
}
