package context

import (
	"context"

	"github.com/octabyte/bm-social/models"
)

type sessionKey struct{}

func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the caller session placed on ctx by the
// authentication middleware.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(models.Session)
	return session, ok
}
