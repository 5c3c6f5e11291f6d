// Package router wires HTTP routes to handlers.  Route files are
// split per concern: auth here, catalog in tour_routes.go, bookings
// in booking_routes.go.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/handler"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies.  Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts registration and login under /api/auth plus the
// protected identity endpoint.  authn is the auth gate produced by
// middleware.Authenticate.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, authn)
}
