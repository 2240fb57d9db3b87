// Package profile renders the signed-in user's identity from the token
// claims, falling back to the stored session and then to placeholders.
package profile

import (
	"context"
	"errors"
	"net/url"

	"github.com/octabyte/bm-social/claims"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/interfaces/ui"
	"github.com/octabyte/bm-social/models"
	otellogger "github.com/octabyte/bm-social/otel/logger"
	"github.com/octabyte/bm-social/session"
	"github.com/octabyte/bm-social/utils"
)

const (
	DefaultFirstName = "John"
	DefaultLastName  = "Doe"
	DefaultEmail     = "johndoe@example.com"

	avatarServiceURL = "https://ui-avatars.com/api/"
)

type Flow struct {
	sessions *session.Context
	nav      ui.Navigator
}

func NewFlow(sessions *session.Context, nav ui.Navigator) *Flow {
	if nav == nil {
		nav = ui.Discard
	}
	return &Flow{sessions: sessions, nav: nav}
}

// Dashboard returns the greeting identity. Fields missing from both the
// claims and the session stay empty.
func (f *Flow) Dashboard(ctx context.Context) (models.Identity, error) {
	s, c, err := f.load(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{
		FirstName: utils.FirstNonEmpty(c.FirstName, s.FirstName),
		LastName:  utils.FirstNonEmpty(c.LastName, s.LastName),
		Email:     utils.FirstNonEmpty(c.Email, s.Email),
	}, nil
}

// Profile returns the full profile identity, placeholders included, with an
// avatar generated from the name when the claims carry no picture.
func (f *Flow) Profile(ctx context.Context) (models.Identity, error) {
	s, c, err := f.load(ctx)
	if err != nil {
		return models.Identity{}, err
	}

	identity := models.Identity{
		FirstName: utils.FirstNonEmpty(c.FirstName, s.FirstName, DefaultFirstName),
		LastName:  utils.FirstNonEmpty(c.LastName, s.LastName, DefaultLastName),
		Email:     utils.FirstNonEmpty(c.Email, s.Email, DefaultEmail),
	}
	identity.AvatarURL = utils.FirstNonEmpty(c.Picture, AvatarURL(identity.FirstName, identity.LastName))
	return identity, nil
}

// AvatarURL builds the generated-initials avatar for a name.
func AvatarURL(firstName, lastName string) string {
	return avatarServiceURL + "?name=" + url.QueryEscape(firstName) + "+" + url.QueryEscape(lastName) + "&background=random"
}

func (f *Flow) load(ctx context.Context) (models.Session, models.Claims, error) {
	s, err := f.sessions.Current(ctx)
	if errors.Is(err, errs.ErrNoSession) || (err == nil && s.Empty()) {
		f.nav.Navigate(enums.SurfaceLogin)
		return models.Session{}, models.Claims{}, errs.ErrNoSession
	}
	if err != nil {
		return models.Session{}, models.Claims{}, err
	}

	c, err := claims.Decode(s.Token)
	if err != nil {
		otellogger.WarnCtx(ctx, "falling back to stored identity: "+err.Error())
		return s, models.Claims{}, nil
	}
	return s, c, nil
}
