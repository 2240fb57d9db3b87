package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/octabyte/bm-social/models"
	ctxutils "github.com/octabyte/bm-social/utils/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func signed(t *testing.T, key []byte, method jwt.SigningMethod) string {
	t.Helper()
	claims := models.Claims{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(SetTokenInContext(), SetSessionFromJWTToken(secret))
	e.GET("/me", func(c echo.Context) error {
		session, _ := ctxutils.GetSessionFromContext(c.Request().Context())
		return c.JSON(http.StatusOK, session)
	}, RequireSession())
	return e
}

func TestBearerTokenProducesSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(Authorization, BearerPrefix+signed(t, secret, jwt.SigningMethodHS256))
	rec := httptest.NewRecorder()

	newServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":"42"`)
	assert.Contains(t, rec.Body.String(), `"firstName":"Ada"`)
}

func TestSessionCookieIsAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed(t, secret, jwt.SigningMethodHS256)})
	rec := httptest.NewRecorder()

	newServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRejectedTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong secret", BearerPrefix + signed(t, []byte("other"), jwt.SigningMethodHS256)},
		{"wrong algorithm", BearerPrefix + signed(t, secret, jwt.SigningMethodHS512)},
		{"garbage", BearerPrefix + "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(Authorization, tt.header)
			}
			rec := httptest.NewRecorder()

			newServer().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
		})
	}
}
