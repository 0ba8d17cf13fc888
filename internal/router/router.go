// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/handler"
)

// Register mounts all routes on the provided Echo instance.  cacheMW is
// applied only to the read endpoints whose responses are safe to share;
// rateMW guards everything, including the booking path.
func Register(e *echo.Echo, classes *handler.ClassHandler, bookings *handler.BookingHandler, stats *handler.StatsHandler, cacheMW, rateMW echo.MiddlewareFunc) {
	e.Use(rateMW)

	e.GET("/", handler.Health)
	e.GET("/healthz", handler.Health)

	e.GET("/classes", classes.ListClasses, cacheMW)
	e.GET("/classes/:id", classes.GetClass, cacheMW)

	e.POST("/book", bookings.Book)
	e.GET("/bookings", bookings.ListBookings)
	e.GET("/bookings/:id", bookings.GetBooking)

	e.GET("/stats", stats.Statistics, cacheMW)
}
