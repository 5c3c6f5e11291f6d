// Package handler implements the HTTP layer.  Handlers depend on
// small store interfaces satisfied by the repository types, so tests
// can run against in-memory fakes.
package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/middleware"
)

var errNoIdentity = errors.New("no authenticated identity in context")

// getUserID extracts the authenticated user id stored by the auth
// gate.  Handlers behind Authenticate should never see an error here;
// it exists so a misconfigured route fails with 401 instead of a
// zero-value identity.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errNoIdentity
}

// getRole returns the authenticated user's role, empty when absent.
func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}
