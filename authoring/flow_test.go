package authoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/octabyte/bm-social/api"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/interfaces/ui"
	"github.com/octabyte/bm-social/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mp4Bytes = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2avc1mp41")
)

func image(name string) MediaFile { return MediaFile{Name: name, Content: pngBytes} }
func video(name string) MediaFile { return MediaFile{Name: name, Content: mp4Bytes} }

type fakePoster struct {
	mu       sync.Mutex
	calls    int
	requests []api.NewPost
	post     models.Post
	err      error
	gate     chan struct{}
	entered  chan struct{}
}

func (p *fakePoster) CreatePost(_ context.Context, post api.NewPost) (models.Post, error) {
	p.mu.Lock()
	p.calls++
	p.requests = append(p.requests, post)
	gate, entered := p.gate, p.entered
	p.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	return p.post, p.err
}

type recordingNotifier struct {
	posts []models.Post
}

func (n *recordingNotifier) PostCreated(_ context.Context, post models.Post) {
	n.posts = append(n.posts, post)
}

func assertParallel(t *testing.T, f *Flow) {
	t.Helper()
	assert.Equal(t, len(f.Files()), len(f.Previews()))
	assert.Equal(t, len(f.Previews()), f.Arena().Live())
}

func TestFocusExpands(t *testing.T) {
	f := NewFlow(&fakePoster{})
	assert.Equal(t, enums.DraftStateCollapsed, f.State())
	f.Focus()
	assert.Equal(t, enums.DraftStateExpanded, f.State())
}

func TestSelectLimits(t *testing.T) {
	f := NewFlow(&fakePoster{})
	require.NoError(t, f.Select(image("a.png"), image("b.png")))

	err := f.Select(image("1"), image("2"), image("3"), image("4"))
	var validation *errs.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, MsgImageLimit, validation.Message)
	assert.Len(t, f.Files(), 2)
	assertParallel(t, f)

	require.NoError(t, f.SetVideoMode(true))
	err = f.Select(video("a.mp4"), video("b.mp4"))
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, MsgVideoLimit, validation.Message)
	assert.Empty(t, f.Files())
	assertParallel(t, f)

	require.NoError(t, f.Select(video("a.mp4")))
	assert.Len(t, f.Files(), 1)
}

func TestSelectRejectsWrongContentType(t *testing.T) {
	f := NewFlow(&fakePoster{})

	var validation *errs.ValidationError
	require.True(t, errors.As(f.Select(video("clip.mp4")), &validation))
	assert.Equal(t, "clip.mp4 is not an image", validation.Message)

	require.NoError(t, f.SetVideoMode(true))
	require.True(t, errors.As(f.Select(image("a.png")), &validation))
	assert.Equal(t, "a.png is not a video", validation.Message)

	require.True(t, errors.As(f.Select(MediaFile{Name: "notes.txt", Content: []byte("hello")}), &validation))
	assert.Equal(t, 0, f.Arena().Live())
}

func TestSelectReplacesAndReleasesPrevious(t *testing.T) {
	f := NewFlow(&fakePoster{})
	require.NoError(t, f.Select(image("a.png"), image("b.png")))
	old := f.Previews()

	require.NoError(t, f.Select(image("c.png")))
	for _, p := range old {
		assert.ErrorIs(t, f.Arena().Release(p.Handle), ErrPreviewReleased)
	}
	assert.Equal(t, "c.png", f.Files()[0].Name)
	assertParallel(t, f)
}

func TestSwitchingModeClearsSelection(t *testing.T) {
	f := NewFlow(&fakePoster{})
	require.NoError(t, f.Select(image("a.png"), image("b.png"), image("c.png")))

	require.NoError(t, f.SetVideoMode(true))
	assert.Empty(t, f.Files())
	assert.Empty(t, f.Previews())
	assert.Zero(t, f.Arena().Live())

	require.NoError(t, f.Select(video("a.mp4")))
	require.NoError(t, f.SetVideoMode(true))
	assert.Len(t, f.Files(), 1)

	require.NoError(t, f.SetVideoMode(false))
	assert.Empty(t, f.Files())
	assertParallel(t, f)
}

func TestRemoveKeepsOrderAndReleasesImmediately(t *testing.T) {
	f := NewFlow(&fakePoster{})
	require.NoError(t, f.Select(image("a.png"), image("b.png"), image("c.png")))
	previews := f.Previews()

	require.NoError(t, f.Remove(1))

	files := f.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.png", files[0].Name)
	assert.Equal(t, "c.png", files[1].Name)
	assert.Equal(t, []Preview{previews[0], previews[2]}, f.Previews())
	assert.ErrorIs(t, f.Arena().Release(previews[1].Handle), ErrPreviewReleased)
	assertParallel(t, f)

	var validation *errs.ValidationError
	assert.True(t, errors.As(f.Remove(5), &validation))
	assert.True(t, errors.As(f.Remove(-1), &validation))
}

func TestSubmitWithoutMediaIsRejectedLocally(t *testing.T) {
	poster := &fakePoster{}
	f := NewFlow(poster)
	require.NoError(t, f.SetDescription("hello"))

	_, err := f.Submit(context.Background())
	var validation *errs.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Zero(t, poster.calls)
	assert.Equal(t, enums.DraftStateExpanded, f.State())
}

func TestSubmitSuccess(t *testing.T) {
	mock := clock.NewMock()
	created := models.Post{ID: 7, MediaType: enums.MediaTypeImage}
	poster := &fakePoster{post: created}
	notifier := &recordingNotifier{}
	f := NewFlow(poster, WithClock(mock), WithNotifiers(notifier))

	require.NoError(t, f.SetDescription("sunset"))
	require.NoError(t, f.Select(image("a.png"), image("b.png")))

	post, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, created, post)

	require.Len(t, poster.requests, 1)
	request := poster.requests[0]
	assert.Equal(t, "sunset", request.Description)
	assert.False(t, request.IsVideo)
	require.Len(t, request.Media, 2)
	assert.Equal(t, "a.png", request.Media[0].Name)
	assert.Equal(t, "image/png", request.Media[0].ContentType)

	assert.True(t, f.SuccessVisible())
	assert.Empty(t, f.Description())
	assert.Empty(t, f.Files())
	assert.False(t, f.VideoMode())
	assert.Zero(t, f.Arena().Live())
	assert.Equal(t, []models.Post{created}, notifier.posts)

	mock.Add(DefaultSuccessBannerDuration - time.Millisecond)
	assert.True(t, f.SuccessVisible())
	mock.Add(time.Millisecond)
	assert.False(t, f.SuccessVisible())
	assert.Equal(t, enums.DraftStateCollapsed, f.State())
}

func TestSubmitVideoResetsMode(t *testing.T) {
	poster := &fakePoster{post: models.Post{ID: 1, MediaType: enums.MediaTypeVideo}}
	f := NewFlow(poster, WithClock(clock.NewMock()))
	require.NoError(t, f.SetVideoMode(true))
	require.NoError(t, f.Select(video("a.mp4")))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, poster.requests[0].IsVideo)
	assert.False(t, f.VideoMode())
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	poster := &fakePoster{err: &errs.ServerRejected{Status: 413, Message: "File too large"}}
	notifier := &recordingNotifier{}
	f := NewFlow(poster, WithNotifiers(notifier))
	require.NoError(t, f.SetDescription("sunset"))
	require.NoError(t, f.Select(image("a.png")))
	previews := f.Previews()

	_, err := f.Submit(context.Background())

	var fetchErr *errs.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "File too large", errs.UserMessage(err, "fallback"))
	assert.Equal(t, enums.DraftStateExpanded, f.State())
	assert.Equal(t, "sunset", f.Description())
	assert.Equal(t, previews, f.Previews())
	assert.Equal(t, 1, f.Arena().Live())
	assert.Empty(t, notifier.posts)
}

func TestSubmitWithoutSessionNavigatesToLogin(t *testing.T) {
	var visited []enums.Surface
	f := NewFlow(&fakePoster{err: errs.ErrNoSession}, WithNavigator(ui.NavigatorFunc(func(s enums.Surface) {
		visited = append(visited, s)
	})))
	require.NoError(t, f.Select(image("a.png")))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, errs.ErrNoSession)
	assert.Equal(t, []enums.Surface{enums.SurfaceLogin}, visited)
	assert.Len(t, f.Files(), 1)
}

func TestOneSubmissionInFlight(t *testing.T) {
	poster := &fakePoster{
		post:    models.Post{ID: 1},
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	f := NewFlow(poster, WithClock(clock.NewMock()))
	require.NoError(t, f.Select(image("a.png")))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-poster.entered

	assert.Equal(t, enums.DraftStateSubmitting, f.State())
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, errs.ErrBusy)
	assert.ErrorIs(t, f.Select(image("b.png")), errs.ErrBusy)
	assert.ErrorIs(t, f.SetDescription("x"), errs.ErrBusy)
	assert.ErrorIs(t, f.SetVideoMode(true), errs.ErrBusy)
	assert.ErrorIs(t, f.Remove(0), errs.ErrBusy)

	close(poster.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, poster.calls)
}

func TestCloseReleasesEveryPreviewOnce(t *testing.T) {
	f := NewFlow(&fakePoster{})
	require.NoError(t, f.Select(image("a.png"), image("b.png")))
	require.NoError(t, f.Remove(0))
	require.NoError(t, f.SetVideoMode(true))
	require.NoError(t, f.Select(video("a.mp4")))
	previews := f.Previews()

	require.NoError(t, f.Close())
	assert.Zero(t, f.Arena().Live())
	assert.Empty(t, f.Files())
	for _, p := range previews {
		assert.ErrorIs(t, f.Arena().Release(p.Handle), ErrPreviewReleased)
	}
}

func TestFocusDismissesBanner(t *testing.T) {
	mock := clock.NewMock()
	f := NewFlow(&fakePoster{post: models.Post{ID: 1}}, WithClock(mock))
	require.NoError(t, f.Select(image("a.png")))
	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	f.Focus()
	assert.Equal(t, enums.DraftStateExpanded, f.State())

	mock.Add(DefaultSuccessBannerDuration)
	assert.Equal(t, enums.DraftStateExpanded, f.State())
}
