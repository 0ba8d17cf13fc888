package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/utils"
)

// StatsHandler serves the utilization statistics endpoint.
type StatsHandler struct {
	Service BookingService
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(svc BookingService) *StatsHandler {
	return &StatsHandler{Service: svc}
}

// Statistics handles GET /stats.
func (h *StatsHandler) Statistics(c echo.Context) error {
	stats, err := h.Service.Statistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"statistics":       stats,
		"current_time_ist": utils.NowIST().Format(time.RFC3339),
	})
}
