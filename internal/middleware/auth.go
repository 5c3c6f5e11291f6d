package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/utils"
)

// UserSource is the subset of the user repository the auth gate
// needs.  It is satisfied by *repository.UserRepo and by fakes in
// tests.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Context keys set by Authenticate for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxName   = "name"
)

// Authenticate returns the auth gate: it requires a valid Bearer
// token, re-resolves the referenced user from the store and attaches
// the identity to the request context.  The role stored in context
// comes from the user record, not from the token claim, so a role
// change takes effect on the next request.  A token whose user no
// longer exists is rejected like any other invalid token.
func Authenticate(secret string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized - no token provided"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, _, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid or expired token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid or expired token"})
			}

			c.Set(CtxUserID, u.ID)
			c.Set(CtxRole, u.Role)
			c.Set(CtxEmail, u.Email)
			c.Set(CtxName, u.Name)
			return next(c)
		}
	}
}
