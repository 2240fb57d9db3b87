// Package authoring drives the create-post workflow: a draft that collects
// a description and media, previews for the selected files, and a single
// multipart submission.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/octabyte/bm-social/api"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/interfaces/ui"
	"github.com/octabyte/bm-social/models"
	otellogger "github.com/octabyte/bm-social/otel/logger"
	"github.com/octabyte/bm-social/otel/metrics"
	"go.uber.org/zap"
)

const (
	MsgVideoLimit   = "Only 1 video allowed"
	MsgImageLimit   = "Up to 3 images allowed"
	MsgNoMedia      = "Please select at least one image or video"
	MsgPostCreated  = "Post created successfully!"
	fieldMediaFiles = "mediaFiles"

	DefaultSuccessBannerDuration = 3 * time.Second
)

// Poster is the backend call that creates a post.
type Poster interface {
	CreatePost(ctx context.Context, post api.NewPost) (models.Post, error)
}

// Notifier is told about every post this flow created.
type Notifier interface {
	PostCreated(ctx context.Context, post models.Post)
}

type draft struct {
	description string
	isVideo     bool
	files       []MediaFile
	previews    []Preview
}

type Flow struct {
	mu             sync.Mutex
	poster         Poster
	arena          *PreviewArena
	nav            ui.Navigator
	clock          clock.Clock
	bannerDuration time.Duration
	notifiers      []Notifier

	state     enums.DraftState
	draft     draft
	banner    *clock.Timer
	bannerGen int
}

type Option func(*Flow)

func WithClock(c clock.Clock) Option {
	return func(f *Flow) {
		f.clock = c
	}
}

func WithSuccessBannerDuration(d time.Duration) Option {
	return func(f *Flow) {
		f.bannerDuration = d
	}
}

func WithNotifiers(notifiers ...Notifier) Option {
	return func(f *Flow) {
		f.notifiers = append(f.notifiers, notifiers...)
	}
}

func WithNavigator(nav ui.Navigator) Option {
	return func(f *Flow) {
		f.nav = nav
	}
}

func NewFlow(poster Poster, opts ...Option) *Flow {
	f := &Flow{
		poster:         poster,
		arena:          NewPreviewArena(),
		nav:            ui.Discard,
		clock:          clock.New(),
		bannerDuration: DefaultSuccessBannerDuration,
		state:          enums.DraftStateCollapsed,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() enums.DraftState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SuccessVisible reports whether the post-created banner is showing.
func (f *Flow) SuccessVisible() bool {
	return f.State() == enums.DraftStateSuccessBanner
}

func (f *Flow) Description() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.description
}

func (f *Flow) VideoMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.isVideo
}

func (f *Flow) Files() []MediaFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MediaFile(nil), f.draft.files...)
}

func (f *Flow) Previews() []Preview {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Preview(nil), f.draft.previews...)
}

// Arena exposes the preview handles owned by this flow.
func (f *Flow) Arena() *PreviewArena {
	return f.arena
}

// Focus opens the composer.
func (f *Flow) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expandLocked()
}

func (f *Flow) SetDescription(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == enums.DraftStateSubmitting {
		return errs.ErrBusy
	}
	f.expandLocked()
	f.draft.description = text
	return nil
}

// SetVideoMode switches between image and video posts. A switch drops the
// current selection.
func (f *Flow) SetVideoMode(isVideo bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == enums.DraftStateSubmitting {
		return errs.ErrBusy
	}
	f.expandLocked()
	if f.draft.isVideo == isVideo {
		return nil
	}
	f.releaseLocked()
	f.draft.isVideo = isVideo
	return nil
}

// Select replaces the selection. A rejected selection leaves the current
// one in place.
func (f *Flow) Select(files ...MediaFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == enums.DraftStateSubmitting {
		return errs.ErrBusy
	}
	f.expandLocked()
	if err := checkSelection(f.draft.isVideo, files); err != nil {
		return err
	}

	f.releaseLocked()
	for _, file := range files {
		f.draft.files = append(f.draft.files, file)
		f.draft.previews = append(f.draft.previews, f.arena.Acquire(file))
	}
	return nil
}

// Remove drops the file at index i together with its preview.
func (f *Flow) Remove(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == enums.DraftStateSubmitting {
		return errs.ErrBusy
	}
	if i < 0 || i >= len(f.draft.files) {
		return errs.Validation(fieldMediaFiles, fmt.Sprintf("no media at position %d", i))
	}

	f.release(f.draft.previews[i])
	f.draft.files = append(f.draft.files[:i:i], f.draft.files[i+1:]...)
	f.draft.previews = append(f.draft.previews[:i:i], f.draft.previews[i+1:]...)
	return nil
}

// Submit uploads the draft. Only one submission runs at a time; on failure
// the draft is kept as it was.
func (f *Flow) Submit(ctx context.Context) (models.Post, error) {
	f.mu.Lock()
	if f.state == enums.DraftStateSubmitting {
		f.mu.Unlock()
		return models.Post{}, errs.ErrBusy
	}
	if len(f.draft.files) == 0 {
		f.mu.Unlock()
		return models.Post{}, errs.Validation(fieldMediaFiles, MsgNoMedia)
	}

	request := api.NewPost{Description: f.draft.description, IsVideo: f.draft.isVideo}
	for _, file := range f.draft.files {
		request.Media = append(request.Media, file.part())
	}
	f.stopBannerLocked()
	f.state = enums.DraftStateSubmitting
	f.mu.Unlock()

	post, err := f.poster.CreatePost(ctx, request)

	f.mu.Lock()
	if err != nil {
		f.state = enums.DraftStateExpanded
		f.mu.Unlock()

		if errors.Is(err, errs.ErrNoSession) {
			f.nav.Navigate(enums.SurfaceLogin)
			return models.Post{}, err
		}
		otellogger.ErrorCtx(ctx, "failed to create post", err)
		return models.Post{}, &errs.FetchError{Op: "create post", Err: err}
	}

	f.releaseLocked()
	f.draft = draft{}
	f.state = enums.DraftStateSuccessBanner
	f.bannerGen++
	gen := f.bannerGen
	f.banner = f.clock.AfterFunc(f.bannerDuration, func() { f.dismissBanner(gen) })
	notifiers := append([]Notifier(nil), f.notifiers...)
	f.mu.Unlock()

	metrics.RecordPostCreated(ctx, string(post.MediaType))
	otellogger.InfoCtx(ctx, "post created", zap.Int64("post_id", post.ID))
	for _, n := range notifiers {
		n.PostCreated(ctx, post)
	}
	return post, nil
}

// Close releases every live preview and stops the banner timer.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopBannerLocked()
	f.releaseLocked()
	return nil
}

func (f *Flow) dismissBanner(gen int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.bannerGen {
		return
	}
	if f.state == enums.DraftStateSuccessBanner {
		f.state = enums.DraftStateCollapsed
	}
	f.banner = nil
}

func (f *Flow) expandLocked() {
	if f.state == enums.DraftStateCollapsed || f.state == enums.DraftStateSuccessBanner {
		f.stopBannerLocked()
		f.state = enums.DraftStateExpanded
	}
}

func (f *Flow) stopBannerLocked() {
	f.bannerGen++
	if f.banner != nil {
		f.banner.Stop()
		f.banner = nil
	}
}

// releaseLocked releases every preview and empties the selection.
func (f *Flow) releaseLocked() {
	for _, preview := range f.draft.previews {
		f.release(preview)
	}
	f.draft.files = nil
	f.draft.previews = nil
}

func (f *Flow) release(preview Preview) {
	if err := f.arena.Release(preview.Handle); err != nil {
		otellogger.WarnCtx(context.Background(), "preview release failed",
			zap.String("handle", preview.Handle), zap.Error(err))
	}
}
