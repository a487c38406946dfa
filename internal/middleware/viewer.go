package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys for the identity headers. Session mechanics are out of
// scope: the acting viewer and device are passed explicitly on every
// request so the engine never reads ambient state.
const (
	ViewerContextKey = "viewerID"
	DeviceContextKey = "deviceID"
)

// ViewerIdentity extracts the acting viewer from the X-Viewer-ID header and
// the device key from X-Device-ID.
func ViewerIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-Viewer-ID")
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing X-Viewer-ID header")
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid X-Viewer-ID header")
			}
			c.Set(ViewerContextKey, uint(id))
			c.Set(DeviceContextKey, c.Request().Header.Get("X-Device-ID"))
			return next(c)
		}
	}
}
