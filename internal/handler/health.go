package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple liveness endpoint for load balancers and
// monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
