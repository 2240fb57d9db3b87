package devserver

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/octabyte/bm-social/models"
)

var (
	errEmailTaken   = errors.New("email already registered")
	errPostNotFound = errors.New("post not found")
	errNotOwner     = errors.New("post belongs to another user")
)

type user struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	Picture      string
}

func (u *user) username() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

type media struct {
	ContentType string
	Content     []byte
}

type storedPost struct {
	post    models.Post
	ownerID int64
}

// store keeps everything in memory for the life of the process.
type store struct {
	mu         sync.RWMutex
	users      map[string]*user
	posts      []*storedPost
	media      map[string]media
	nextUserID int64
	nextPostID int64
}

func newStore() *store {
	return &store{
		users: make(map[string]*user),
		media: make(map[string]media),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *store) addUser(u user) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := s.users[key]; ok {
		return nil, errEmailTaken
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[key] = &u
	return &u, nil
}

// userByEmail returns a copy of the stored user.
func (s *store) userByEmail(email string) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[emailKey(email)]
	if !ok {
		return user{}, false
	}
	return *u, true
}

func (s *store) userByID(id string) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strconv.FormatInt(u.ID, 10) == id {
			return *u, true
		}
	}
	return user{}, false
}

func (s *store) putMedia(id string, m media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[id] = m
}

func (s *store) getMedia(id string) (media, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.media[id]
	return m, ok
}

func (s *store) addPost(owner user, post models.Post, now time.Time) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPostID++
	post.ID = s.nextPostID
	post.Username = owner.username()
	post.CreatedAt = models.Timestamp{Time: now.UTC()}
	s.posts = append(s.posts, &storedPost{post: post, ownerID: owner.ID})
	return post
}

func (s *store) postsOf(ownerID int64) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.ownerID == ownerID {
			out = append(out, p.post)
		}
	}
	return out
}

func (s *store) updateDescription(ownerID, id int64, description string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.ownedLocked(ownerID, id)
	if err != nil {
		return models.Post{}, err
	}
	s.posts[i].post.Description = description
	return s.posts[i].post, nil
}

func (s *store) deletePost(ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.ownedLocked(ownerID, id)
	if err != nil {
		return err
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *store) ownedLocked(ownerID, id int64) (int, error) {
	for i, p := range s.posts {
		if p.post.ID != id {
			continue
		}
		if p.ownerID != ownerID {
			return -1, errNotOwner
		}
		return i, nil
	}
	return -1, errPostNotFound
}
