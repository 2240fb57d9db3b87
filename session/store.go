// Package session persists the signed-in user's session and exposes it to
// the flows through an explicit Context.
package session

import (
	"context"
	"errors"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/models"
)

var ErrNotFound = errors.New("session not found")

// Store persists a session as individual string entries keyed by name.
// Stores never validate or expire a session; the server is the judge of
// whether a token is still good.
type Store interface {
	Save(ctx context.Context, session models.Session) error
	// Load returns ErrNotFound when nothing is stored.
	Load(ctx context.Context) (models.Session, error)
	Clear(ctx context.Context) error
}

func toEntries(s models.Session) map[string]string {
	return map[string]string{
		enums.SessionKeyToken:     s.Token,
		enums.SessionKeyUserID:    s.UserID,
		enums.SessionKeyEmail:     s.Email,
		enums.SessionKeyFirstName: s.FirstName,
		enums.SessionKeyLastName:  s.LastName,
	}
}

func fromEntries(entries map[string]string) (models.Session, error) {
	if len(entries) == 0 {
		return models.Session{}, ErrNotFound
	}
	return models.Session{
		Token:     entries[enums.SessionKeyToken],
		UserID:    entries[enums.SessionKeyUserID],
		Email:     entries[enums.SessionKeyEmail],
		FirstName: entries[enums.SessionKeyFirstName],
		LastName:  entries[enums.SessionKeyLastName],
	}, nil
}
