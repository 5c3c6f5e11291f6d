package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/handler"
	"github.com/roamly/tour-booking-api/internal/middleware"
	"github.com/roamly/tour-booking-api/internal/model"
)

// RegisterTours mounts the catalog under /api/tours.  Reads are
// public and response-cached; create and delete are admin-only.
// Update is open to any authenticated user at the route level because
// the creator-or-admin rule needs the tour row and lives in the
// handler.
func RegisterTours(e *echo.Echo, h *handler.TourHandler, authn, cache echo.MiddlewareFunc) {
	g := e.Group("/api/tours")

	g.GET("", h.List, cache)
	g.GET("/:id", h.Get, cache)

	g.POST("", h.Create, authn, middleware.RequireRole(model.RoleAdmin))
	g.PUT("/:id", h.Update, authn)
	g.DELETE("/:id", h.Delete, authn, middleware.RequireRole(model.RoleAdmin))
}
