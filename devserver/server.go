// Package devserver is an in-memory backend speaking the social REST API,
// for local development and integration tests. Nothing it stores outlives
// the process.
package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/octabyte/bm-social/interfaces/http/echo/middleware"
	otelecho "github.com/octabyte/bm-social/otel/echo"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 24 * time.Hour

type Config struct {
	// Secret signs the HS256 session tokens.
	Secret      string `validate:"required"`
	ServiceName string
	TokenTTL    time.Duration
	BcryptCost  int
	// Tracing wraps every route in the OpenTelemetry echo middleware.
	Tracing bool
}

type Server struct {
	echo   *echo.Echo
	store  *store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func New(cfg Config) (*Server, error) {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	s := &Server{
		echo:   echo.New(),
		store:  newStore(),
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BcryptCost,
		now:    time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTokenTTL
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.INFO)
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &requestValidator{validate: validate}
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.BodyLimit("64M"))
	if cfg.Tracing {
		serviceName := cfg.ServiceName
		if serviceName == "" {
			serviceName = "bm-social-devserver"
		}
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(middleware.SetTokenInContext(), middleware.SetSessionFromJWTToken(s.secret))

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/media/:id", s.getMedia)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/google-login", s.googleLogin)

	requireSession := middleware.RequireSession()
	e.POST("/auth/signout", s.signOut, requireSession)

	postsGroup := e.Group("/api/posts", requireSession)
	postsGroup.POST("", s.createPost)
	postsGroup.GET("/me", s.listMyPosts)
	postsGroup.PUT("/:id", s.updatePost)
	postsGroup.DELETE("/:id", s.deletePost)
}

// ServeHTTP lets the server be mounted on httptest or any mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.echo.Logger.Infof("dev backend listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
