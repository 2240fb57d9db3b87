// Package posts manages the caller's own posts: the fetched list, inline
// editing, confirmed deletion and sign-out. The local list only changes
// after the backend confirmed a mutation, and always takes the backend's
// representation.
package posts

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/interfaces/ui"
	"github.com/octabyte/bm-social/models"
	otellogger "github.com/octabyte/bm-social/otel/logger"
	"github.com/octabyte/bm-social/session"
	"go.uber.org/zap"
)

const MsgConfirmDelete = "Are you sure you want to delete this post?"

type Backend interface {
	ListMyPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id int64, description string) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	SignOut(ctx context.Context) error
}

type Flow struct {
	mu        sync.Mutex
	backend   Backend
	sessions  *session.Context
	nav       ui.Navigator
	confirmer ui.Confirmer

	posts    []models.Post
	editing  bool
	editID   int64
	editText string
	saving   map[int64]struct{}
	deleting map[int64]struct{}
}

func NewFlow(backend Backend, sessions *session.Context, nav ui.Navigator, confirmer ui.Confirmer) *Flow {
	if nav == nil {
		nav = ui.Discard
	}
	return &Flow{
		backend:   backend,
		sessions:  sessions,
		nav:       nav,
		confirmer: confirmer,
		saving:    make(map[int64]struct{}),
		deleting:  make(map[int64]struct{}),
	}
}

// Posts returns the displayed list, newest first.
func (f *Flow) Posts() []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Post(nil), f.posts...)
}

func (f *Flow) Post(id int64) (models.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.indexLocked(id); i >= 0 {
		return f.posts[i], true
	}
	return models.Post{}, false
}

// FetchMine reloads the list. On failure the previous list stays.
func (f *Flow) FetchMine(ctx context.Context) ([]models.Post, error) {
	fetched, err := f.backend.ListMyPosts(ctx)
	if err != nil {
		return nil, f.failed(ctx, "fetch posts", err)
	}

	sortNewestFirst(fetched)

	f.mu.Lock()
	f.posts = fetched
	f.mu.Unlock()

	return append([]models.Post(nil), fetched...), nil
}

func (f *Flow) BeginEdit(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.editing = true
	f.editID = id
	f.editText = ""
	if i := f.indexLocked(id); i >= 0 {
		f.editText = f.posts[i].Description
	}
}

func (f *Flow) SetEditText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editText = text
}

func (f *Flow) CancelEdit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = false
	f.editID = 0
	f.editText = ""
}

// Editing returns the post being edited and the text in its editor.
func (f *Flow) Editing() (int64, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editID, f.editText, f.editing
}

// Edit saves text as the description of post id. The editor stays open
// with text when the save fails.
func (f *Flow) Edit(ctx context.Context, id int64, text string) (models.Post, error) {
	f.mu.Lock()
	if _, busy := f.saving[id]; busy {
		f.mu.Unlock()
		return models.Post{}, errs.ErrBusy
	}
	f.editing = true
	f.editID = id
	f.editText = text
	f.saving[id] = struct{}{}
	f.mu.Unlock()

	updated, err := f.backend.UpdatePost(ctx, id, text)

	f.mu.Lock()
	delete(f.saving, id)
	if err != nil {
		f.mu.Unlock()
		return models.Post{}, f.failed(ctx, "edit post", err)
	}

	if i := f.indexLocked(id); i >= 0 {
		f.posts[i] = updated
	}
	if f.editing && f.editID == id {
		f.editing = false
		f.editID = 0
		f.editText = ""
	}
	f.mu.Unlock()

	otellogger.InfoCtx(ctx, "post updated", zap.Int64("post_id", id))
	return updated, nil
}

// Delete removes post id after the user confirmed it.
func (f *Flow) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	_, busy := f.deleting[id]
	f.mu.Unlock()
	if busy {
		return errs.ErrBusy
	}

	if f.confirmer == nil || !f.confirmer.Confirm(MsgConfirmDelete) {
		return errs.ErrCancelled
	}

	f.mu.Lock()
	if _, busy := f.deleting[id]; busy {
		f.mu.Unlock()
		return errs.ErrBusy
	}
	f.deleting[id] = struct{}{}
	f.mu.Unlock()

	err := f.backend.DeletePost(ctx, id)

	f.mu.Lock()
	delete(f.deleting, id)
	if err != nil {
		f.mu.Unlock()
		return f.failed(ctx, "delete post", err)
	}
	if i := f.indexLocked(id); i >= 0 {
		f.posts = append(f.posts[:i:i], f.posts[i+1:]...)
	}
	f.mu.Unlock()

	otellogger.InfoCtx(ctx, "post deleted", zap.Int64("post_id", id))
	return nil
}

// Logout tells the backend, then clears the session and returns to login
// whatever the backend said.
func (f *Flow) Logout(ctx context.Context) error {
	if err := f.backend.SignOut(ctx); err != nil {
		otellogger.WarnCtx(ctx, "sign-out notification failed", zap.Error(err))
	}

	f.mu.Lock()
	f.posts = nil
	f.editing = false
	f.mu.Unlock()

	err := f.sessions.Clear(ctx)
	f.nav.Navigate(enums.SurfaceLogin)
	return err
}

// PostCreated adds a post created elsewhere in the client to the list.
func (f *Flow) PostCreated(_ context.Context, post models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := f.indexLocked(post.ID); i >= 0 {
		f.posts[i] = post
	} else {
		f.posts = append([]models.Post{post}, f.posts...)
	}
	sortNewestFirst(f.posts)
}

func (f *Flow) failed(ctx context.Context, op string, err error) error {
	if errors.Is(err, errs.ErrNoSession) {
		f.nav.Navigate(enums.SurfaceLogin)
		return err
	}
	otellogger.ErrorCtx(ctx, op+" failed", err)
	return &errs.FetchError{Op: op, Err: err}
}

func (f *Flow) indexLocked(id int64) int {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return i
		}
	}
	return -1
}

// sortNewestFirst orders by creation time, keeping server order for ties.
func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt.Time)
	})
}
