// Package poststore keeps the feed's post collection in memory and mirrors
// every mutation to a key-value store by rewriting the whole collection.
package poststore

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/logging"
)

// PostsKey is the key-value entry holding the JSON-encoded collection.
const PostsKey = "posts"

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces uuid generation, mostly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the single source of truth for the post collection.
// Safe for concurrent use: each mutation is one locked read-modify-write.
type Store struct {
	kv    app.KeyValueStore
	newID func() string
	now   func() time.Time
	log   *log.Logger

	mu    sync.Mutex
	posts []domain.Post
}

// New creates a Store over kv and loads the persisted collection.
func New(kv app.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		newID: uuid.NewString,
		now:   time.Now,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load replaces the in-memory collection with the persisted one. Missing or
// malformed data loads as an empty collection.
func (s *Store) Load() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = s.read()
	return slices.Clone(s.posts)
}

func (s *Store) read() []domain.Post {
	raw, ok, err := s.kv.Get(PostsKey)
	if err != nil {
		s.log.Warn("reading posts failed, starting empty", "err", err)
		return []domain.Post{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.Post{}
	}
	var posts []domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		s.log.Warn("stored posts are malformed, starting empty", "err", err)
		return []domain.Post{}
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts
}

// Posts returns a copy of the collection, newest first.
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.posts)
}

// Create validates in, prepends a new post and persists the collection.
func (s *Store) Create(in domain.NewPost) (domain.Post, error) {
	if err := in.Validate(); err != nil {
		return domain.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Post{
		ID:        s.uniqueID(),
		Image:     in.Image,
		Caption:   strings.TrimSpace(in.Caption),
		Timestamp: domain.NewTimestamp(s.now()),
	}
	s.posts = append([]domain.Post{p}, s.posts...)
	s.log.Info("post created", "id", p.ID, "count", len(s.posts))
	return p, s.persist("create")
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
		s.log.Warn("generated id collided, retrying", "id", id)
	}
}

// ToggleLiked flips the liked flag of the post with id.
func (s *Store) ToggleLiked(id string) ([]domain.Post, error) {
	return s.mutate("toggle liked", id, func(p *domain.Post) { p.Liked = !p.Liked })
}

// ToggleSaved flips the saved flag of the post with id.
func (s *Store) ToggleSaved(id string) ([]domain.Post, error) {
	return s.mutate("toggle saved", id, func(p *domain.Post) { p.Saved = !p.Saved })
}

func (s *Store) mutate(op, id string, fn func(*domain.Post)) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		posts := slices.Clone(s.posts)
		fn(&posts[i])
		s.posts = posts
	} else {
		s.log.Debug("post not found", "op", op, "id", id)
	}
	return slices.Clone(s.posts), s.persist(op)
}

// Delete removes the post with id.
func (s *Store) Delete(id string) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.posts = slices.Delete(slices.Clone(s.posts), i, i+1)
		s.log.Info("post deleted", "id", id, "count", len(s.posts))
	} else {
		s.log.Debug("post not found", "op", "delete", "id", id)
	}
	return slices.Clone(s.posts), s.persist("delete")
}

// ClearAll empties the collection and removes the persisted key.
func (s *Store) ClearAll() ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = []domain.Post{}
	s.log.Info("feed cleared")
	if err := s.kv.Delete(PostsKey); err != nil {
		s.log.Warn("clearing persisted posts failed", "err", err)
		return []domain.Post{}, &domain.PersistError{Op: "clear", Err: err}
	}
	return []domain.Post{}, nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
}

// persist rewrites the entire collection. Callers hold s.mu.
func (s *Store) persist(op string) error {
	raw, err := json.Marshal(s.posts)
	if err != nil {
		return &domain.PersistError{Op: op, Err: fmt.Errorf("encoding posts: %w", err)}
	}
	if err := s.kv.Set(PostsKey, string(raw)); err != nil {
		s.log.Warn("persisting posts failed", "op", op, "err", err)
		return &domain.PersistError{Op: op, Err: err}
	}
	return nil
}
