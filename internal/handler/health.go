package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/utils"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Health handles GET /.  It reports the service identity, version and
// the current IST time so operators can sanity-check the comparison
// clock.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Fitness Studio Booking API",
		"version":          Version,
		"status":           "running",
		"current_time_ist": utils.NowIST().Format(time.RFC3339),
	})
}
