package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ctxutils "github.com/octabyte/bm-social/utils/context"
)

// RequireSession answers 401 with the error envelope unless an earlier
// middleware placed a session on the request.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ctxutils.GetSessionFromContext(c.Request().Context()); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}
			return next(c)
		}
	}
}
