package authoring

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/octabyte/bm-social/otel/metrics"
)

const previewScheme = "blob:bm-social/"

var (
	ErrPreviewReleased = errors.New("preview already released")
	ErrUnknownPreview  = errors.New("preview was never acquired")
)

// Preview is a local reference to a selected file, valid until released.
type Preview struct {
	Handle      string
	Name        string
	ContentType string
}

// PreviewArena hands out preview handles and tracks their release. Every
// handle can be released exactly once.
type PreviewArena struct {
	mu       sync.Mutex
	live     map[string]Preview
	released map[string]struct{}
}

func NewPreviewArena() *PreviewArena {
	return &PreviewArena{
		live:     make(map[string]Preview),
		released: make(map[string]struct{}),
	}
}

func (a *PreviewArena) Acquire(file MediaFile) Preview {
	preview := Preview{
		Handle:      previewScheme + uuid.NewString(),
		Name:        file.Name,
		ContentType: file.ContentType(),
	}

	a.mu.Lock()
	a.live[preview.Handle] = preview
	a.mu.Unlock()

	metrics.AddLivePreviews(context.Background(), 1)
	return preview
}

func (a *PreviewArena) Release(handle string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.released[handle]; ok {
		return ErrPreviewReleased
	}
	if _, ok := a.live[handle]; !ok {
		return ErrUnknownPreview
	}

	delete(a.live, handle)
	a.released[handle] = struct{}{}
	metrics.AddLivePreviews(context.Background(), -1)
	return nil
}

// Live returns the number of handles acquired and not yet released.
func (a *PreviewArena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
