package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/handler"
	"github.com/roamly/tour-booking-api/internal/middleware"
	"github.com/roamly/tour-booking-api/internal/model"
)

// RegisterBookings mounts the booking lifecycle under /api/bookings.
// Everything requires authentication; the aggregate view additionally
// requires the admin role.  Cancellation is a PUT on the booking id —
// bookings are never deleted, only transitioned.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/api/bookings", authn)

	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.PUT("/:id", h.Cancel)

	g.GET("/admin/all", h.ListAll, middleware.RequireRole(model.RoleAdmin))
}
