package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/engine"
)

// EmpathyHandler handles the empathy toggle.
type EmpathyHandler struct {
	empathy *engine.EmpathyService
}

// NewEmpathyHandler creates a new EmpathyHandler.
func NewEmpathyHandler(empathy *engine.EmpathyService) *EmpathyHandler {
	return &EmpathyHandler{empathy: empathy}
}

// RegisterEmpathyRoutes registers empathy routes.
func (h *EmpathyHandler) RegisterEmpathyRoutes(g *echo.Group) {
	g.POST("/stories/:id/empathy", h.ToggleEmpathy)
}

// ToggleEmpathy flips the viewer's empathy on a story and returns the
// resulting state.
func (h *EmpathyHandler) ToggleEmpathy(c echo.Context) error {
	empathized, err := h.empathy.Toggle(c.Request().Context(), c.Param("id"), getViewerID(c))
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"empathized": empathized})
}
