package api

import (
	"context"
	"net/http"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/models"
	"github.com/octabyte/bm-social/utils"
)

const (
	loginPath       = "/api/auth/login"
	googleLoginPath = "/api/auth/google-login"
	registerPath    = "/api/auth/register"
	signOutPath     = "/auth/signout"
)

func (c *Client) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	body, err := c.do(ctx, "login", http.MethodPost, loginPath, c.http.R().SetBody(credentials))
	if err != nil {
		return models.Session{}, err
	}
	return sessionFromBody(body), nil
}

// GoogleLogin exchanges a Google identity credential for a session.
func (c *Client) GoogleLogin(ctx context.Context, credential models.OAuthCredential) (models.Session, error) {
	body, err := c.do(ctx, "google-login", http.MethodPost, googleLoginPath, c.http.R().SetBody(credential))
	if err != nil {
		return models.Session{}, err
	}
	return sessionFromBody(body), nil
}

func (c *Client) Register(ctx context.Context, registration models.Registration) error {
	_, err := c.do(ctx, "register", http.MethodPost, registerPath, c.http.R().SetBody(registration))
	return err
}

func (c *Client) SignOut(ctx context.Context) error {
	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "signout", http.MethodPost, signOutPath, req)
	return err
}

func sessionFromBody(body []byte) models.Session {
	return models.Session{
		Token:     utils.StringField(body, enums.SessionKeyToken),
		UserID:    utils.StringField(body, enums.SessionKeyUserID),
		Email:     utils.StringField(body, enums.SessionKeyEmail),
		FirstName: utils.StringField(body, enums.SessionKeyFirstName),
		LastName:  utils.StringField(body, enums.SessionKeyLastName),
	}
}
