package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	ctxutils "github.com/octabyte/bm-social/utils/context"
)

// SetTokenInContext copies the bearer token of the request, from the
// Authorization header or else the session cookie, onto both the echo
// context and the request context.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get(Authorization), BearerPrefix))

			if token == "" {
				cookie, err := c.Cookie(SessionCookie)
				if err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				return next(c)
			}

			c.Set(TokenKey, token)
			c.SetRequest(c.Request().WithContext(ctxutils.WithToken(c.Request().Context(), token)))
			return next(c)
		}
	}
}
