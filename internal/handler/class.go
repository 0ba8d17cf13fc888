package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/repository"
)

// ClassHandler serves the class browsing endpoints.
type ClassHandler struct {
	Service BookingService
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(svc BookingService) *ClassHandler {
	return &ClassHandler{Service: svc}
}

// ListClasses handles GET /classes.  It returns all upcoming classes
// with their remaining availability, soonest first.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	classes, err := h.Service.ListClasses(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": classes})
}

// GetClass handles GET /classes/:id.  Past classes respond 404 exactly
// like missing ones.
func (h *ClassHandler) GetClass(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid class ID"})
	}
	class, err := h.Service.GetClass(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, class)
}
