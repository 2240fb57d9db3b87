package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/octabyte/bm-social/claims"
	"github.com/octabyte/bm-social/models"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return err
	}

	u, err := s.store.addUser(user{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, errEmailTaken) {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}
	if err != nil {
		return err
	}

	c.Logger().Infof("registered user %d", u.ID)
	return c.JSON(http.StatusCreated, envelope{Message: "User registered successfully"})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, ok := s.store.userByEmail(req.Email)
	if !ok || len(u.PasswordHash) == 0 ||
		bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	return s.issue(c, u)
}

// googleLogin trusts the identity claims of the Google credential without
// verifying them. Unknown emails get an account on first use.
func (s *Server) googleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	email := claims.Field(req.Token, "email")
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Google credential")
	}

	u, ok := s.store.userByEmail(email)
	if !ok {
		created, err := s.store.addUser(user{
			FirstName: claims.Field(req.Token, "given_name"),
			LastName:  claims.Field(req.Token, "family_name"),
			Email:     email,
			Picture:   claims.Field(req.Token, "picture"),
		})
		if err != nil && !errors.Is(err, errEmailTaken) {
			return err
		}
		if created != nil {
			u = *created
		} else {
			u, _ = s.store.userByEmail(email)
		}
	}
	return s.issue(c, u)
}

func (s *Server) issue(c echo.Context, u user) error {
	now := s.now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Picture:   u.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// signOut has nothing to revoke; tokens simply expire.
func (s *Server) signOut(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
