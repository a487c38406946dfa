package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/middleware"
)

// getViewerID returns the acting viewer set by the identity middleware.
func getViewerID(c echo.Context) uint {
	if id, ok := c.Get(middleware.ViewerContextKey).(uint); ok {
		return id
	}
	return 0
}

// getDeviceID returns the device key set by the identity middleware.
func getDeviceID(c echo.Context) string {
	if id, ok := c.Get(middleware.DeviceContextKey).(string); ok {
		return id
	}
	return ""
}

// engineError maps the engine failure taxonomy onto HTTP responses.
// Invariant rejections carry their specific, actionable message; anything
// else from the stores is transient and surfaces a generic retry prompt.
func engineError(err error) error {
	if errors.Is(err, engine.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	if inv := engine.AsInvariant(err); inv != nil {
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"reason":  inv.Reason,
			"message": inv.Message,
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong. Please try again.")
}
