package posts

import "sync"

// Lightbox pages through the images of one post. Navigation wraps in both
// directions.
type Lightbox struct {
	mu     sync.Mutex
	images []string
	index  int
	open   bool
}

// Open shows images starting at index. It reports false, staying closed,
// when there is nothing to show.
func (l *Lightbox) Open(images []string, index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(images) == 0 {
		return false
	}
	l.images = append([]string(nil), images...)
	l.index = wrap(index, len(images))
	l.open = true
	return true
}

func (l *Lightbox) Next() {
	l.step(1)
}

func (l *Lightbox) Prev() {
	l.step(-1)
}

func (l *Lightbox) step(delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		l.index = wrap(l.index+delta, len(l.images))
	}
}

func (l *Lightbox) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = false
	l.images = nil
	l.index = 0
}

func (l *Lightbox) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Current returns the shown image and its index, or "" and -1 when closed.
func (l *Lightbox) Current() (string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open {
		return "", -1
	}
	return l.images[l.index], l.index
}

// Len is the number of images in the open set.
func (l *Lightbox) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.images)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
