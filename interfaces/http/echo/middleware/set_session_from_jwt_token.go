package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/octabyte/bm-social/models"
	ctxutils "github.com/octabyte/bm-social/utils/context"
)

// SetSessionFromJWTToken verifies the request token with the HS256 secret
// and places the session it describes on the request context. Requests
// without a valid token pass through without a session.
func SetSessionFromJWTToken(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ctxutils.GetTokenFromContext(c.Request().Context())
			if token == "" {
				return next(c)
			}

			var claims models.Claims
			if _, err := parser.ParseWithClaims(token, &claims, keyFunc); err != nil {
				log.Debugf("rejecting bearer token: %v", err)
				return next(c)
			}

			session := models.Session{
				Token:     token,
				UserID:    claims.Subject,
				Email:     claims.Email,
				FirstName: claims.FirstName,
				LastName:  claims.LastName,
			}
			c.Set(RequestSessionKey, session)
			c.SetRequest(c.Request().WithContext(ctxutils.WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}
