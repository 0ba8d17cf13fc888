package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/repository"
	"github.com/NafiGit/omnify/internal/utils"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Service BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// BookRequest is the body for POST /book.  The validator tags reject
// obviously malformed bodies on bind; the canonical trim/lowercase
// normalization happens afterwards in the handler.
type BookRequest struct {
	ClassID     uint64 `json:"class_id" validate:"required,gt=0"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required"`
}

// Book handles POST /book.  It normalizes and validates the input,
// runs the advisory validation pass for an early rejection message, and
// then commits through the engine, whose transactional re-checks are
// authoritative.  Rejections respond 400 with a reason; storage faults
// respond 500 with a generic message.
func (h *BookingHandler) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	name, ok := utils.CleanName(req.ClientName)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Client name must be at least 2 characters long"})
	}
	email, ok := utils.CleanEmail(req.ClientEmail)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email format"})
	}

	ctx := c.Request().Context()
	if err := h.Service.Validate(ctx, req.ClassID, email); err != nil {
		return h.reject(c, err)
	}

	result, err := h.Service.Create(ctx, req.ClassID, name, email)
	if err != nil {
		return h.reject(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// reject maps an engine error to the client-facing response.
func (h *BookingHandler) reject(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrClassNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Class not found or not available"})
	case errors.Is(err, repository.ErrNoSlots):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No available slots for this class"})
	case errors.Is(err, repository.ErrDuplicateBooking):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You have already booked this class"})
	case errors.Is(err, repository.ErrNotCreated):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to create booking. Please try again."})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}

// ListBookings handles GET /bookings?email=.  The email is required and
// lowercased before lookup so history queries see the same identity the
// duplicate check uses.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Valid email address is required"})
	}
	email = strings.ToLower(email)

	bookings, err := h.Service.BookingsByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}
	booking, err := h.Service.GetBooking(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, booking)
}
