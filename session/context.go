package session

import (
	"context"
	"errors"
	"sync"

	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/models"
)

// Context is the one object through which flows read and write the session.
// It is created by the lifecycle root and handed down explicitly.
type Context struct {
	mu    sync.RWMutex
	store Store
}

func NewContext(store Store) *Context {
	return &Context{store: store}
}

func (c *Context) Save(ctx context.Context, s models.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Save(ctx, s)
}

// Current returns the stored session, errs.ErrNoSession when there is none.
func (c *Context) Current(ctx context.Context) (models.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return models.Session{}, errs.ErrNoSession
	}
	return s, err
}

// Token returns the bearer token, errs.ErrNoSession when none is stored.
func (c *Context) Token(ctx context.Context) (string, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return "", err
	}
	if s.Empty() {
		return "", errs.ErrNoSession
	}
	return s.Token, nil
}

func (c *Context) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Clear(ctx)
}
