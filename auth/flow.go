// Package auth signs users in and registers them. A successful sign-in is
// the only thing that writes the session.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/interfaces/ui"
	"github.com/octabyte/bm-social/models"
	"github.com/octabyte/bm-social/session"
	"github.com/octabyte/bm-social/utils/logger"
	"go.uber.org/zap"
)

const (
	MsgLoginFailed       = "Login failed. Please check your credentials."
	MsgGoogleLoginFailed = "Google login failed"
	MsgRegisterFailed    = "Registration failed"
	MsgPasswordMismatch  = "Passwords don't match"
)

// Backend is the part of the REST API the auth flow talks to.
type Backend interface {
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)
	GoogleLogin(ctx context.Context, credential models.OAuthCredential) (models.Session, error)
	Register(ctx context.Context, registration models.Registration) error
}

type Flow struct {
	backend  Backend
	sessions *session.Context
	nav      ui.Navigator
}

func NewFlow(backend Backend, sessions *session.Context, nav ui.Navigator) *Flow {
	if nav == nil {
		nav = ui.Discard
	}
	return &Flow{backend: backend, sessions: sessions, nav: nav}
}

// Login checks the credentials locally, exchanges them for a session,
// stores it and moves to the dashboard.
func (f *Flow) Login(ctx context.Context, email, password string) (models.Session, error) {
	credentials := models.Credentials{Email: email, Password: password}
	if err := check(credentials); err != nil {
		return models.Session{}, err
	}

	s, err := f.backend.Login(ctx, credentials)
	return f.establish(ctx, "login", s, err, MsgLoginFailed)
}

// LoginWithOAuthCredential exchanges the credential produced by the OAuth
// provider for a session.
func (f *Flow) LoginWithOAuthCredential(ctx context.Context, credential string) (models.Session, error) {
	oauth := models.OAuthCredential{Token: credential}
	if err := check(oauth); err != nil {
		return models.Session{}, err
	}

	s, err := f.backend.GoogleLogin(ctx, oauth)
	return f.establish(ctx, "google-login", s, err, MsgGoogleLoginFailed)
}

func (f *Flow) establish(ctx context.Context, op string, s models.Session, err error, fallback string) (models.Session, error) {
	if errors.Is(err, context.Canceled) {
		return models.Session{}, err
	}
	if err != nil {
		logger.LogWarn("sign-in failed", zap.String("operation", op), zap.Error(err))
		return models.Session{}, &errs.AuthError{Message: errs.UserMessage(err, fallback), Err: err}
	}
	if s.Empty() {
		logger.LogWarn("sign-in returned no token", zap.String("operation", op))
		return models.Session{}, &errs.AuthError{Message: fallback}
	}

	if err := f.sessions.Save(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	logger.LogInfo("signed in", zap.String("operation", op), zap.String("user_id", s.UserID))
	f.nav.Navigate(enums.SurfaceDashboard)
	return s, nil
}

// Register creates an account and moves to the login surface. The session
// is not touched.
func (f *Flow) Register(ctx context.Context, registration models.Registration) error {
	if err := check(registration); err != nil {
		return err
	}

	if err := f.backend.Register(ctx, registration); err != nil {
		logger.LogWarn("registration failed", zap.String("email", registration.Email), zap.Error(err))

		status := 0
		var rejected *errs.ServerRejected
		if errors.As(err, &rejected) {
			status = rejected.Status
		}
		return &errs.ServerRejected{Status: status, Message: errs.UserMessage(err, MsgRegisterFailed)}
	}

	logger.LogInfo("registered", zap.String("email", registration.Email))
	f.nav.Navigate(enums.SurfaceLogin)
	return nil
}
