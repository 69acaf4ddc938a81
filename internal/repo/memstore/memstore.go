// Package memstore is an in-process entity store for local runs and tests.
// Every operation holds one mutex, which makes each call atomic the way a
// single-document update is atomic in MongoDB.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*domain.User
	topics   map[primitive.ObjectID]*domain.Topic
	comments map[primitive.ObjectID]*domain.Comment
	posts    map[primitive.ObjectID]*domain.Post
	order    []primitive.ObjectID // post insertion order

	// Fail, when set, is consulted before every call; a non-nil result is
	// returned as the call's error. Tests use it to inject store failures.
	Fail func(op string) error
}

func New() *Store {
	return &Store{
		users:    map[primitive.ObjectID]*domain.User{},
		topics:   map[primitive.ObjectID]*domain.Topic{},
		comments: map[primitive.ObjectID]*domain.Comment{},
		posts:    map[primitive.ObjectID]*domain.Post{},
	}
}

func (s *Store) fail(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op)
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close(ctx context.Context) error { return nil }

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Topics = append([]primitive.ObjectID{}, p.Topics...)
	c.Comments = append([]primitive.ObjectID{}, p.Comments...)
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Dislikes = append([]primitive.ObjectID{}, p.Dislikes...)
	return &c
}

// users

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateUser"); err != nil {
		return err
	}
	for _, x := range s.users {
		if x.Email == u.Email {
			return fmt.Errorf("%w: email already exists", domain.ErrConflict)
		}
		if x.Username == u.Username {
			return fmt.Errorf("%w: username already exists", domain.ErrConflict)
		}
	}
	u.ID = primitive.NewObjectID()
	c := *u
	s.users[u.ID] = &c
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByID"); err != nil {
		return nil, err
	}
	if u, ok := s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (s *Store) findUser(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range s.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByEmail"); err != nil {
		return nil, err
	}
	return s.findUser(func(u *domain.User) bool { return u.Email == email })
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByUsername"); err != nil {
		return nil, err
	}
	return s.findUser(func(u *domain.User) bool { return u.Username == username })
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUsersByIDs"); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			c := *u
			out[id] = &c
		}
	}
	return out, nil
}

// topics

func (s *Store) CreateTopic(ctx context.Context, t *domain.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateTopic"); err != nil {
		return err
	}
	for _, x := range s.topics {
		if x.Name == t.Name {
			return fmt.Errorf("%w: topic name", domain.ErrConflict)
		}
	}
	t.ID = primitive.NewObjectID()
	c := *t
	s.topics[t.ID] = &c
	return nil
}

func (s *Store) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListTopics"); err != nil {
		return nil, err
	}
	out := make([]domain.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (s *Store) FindTopicByID(ctx context.Context, id primitive.ObjectID) (*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindTopicByID"); err != nil {
		return nil, err
	}
	if t, ok := s.topics[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (s *Store) FindTopicByName(ctx context.Context, name string) (*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindTopicByName"); err != nil {
		return nil, err
	}
	for _, t := range s.topics {
		if t.Name == name {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) FindTopicsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindTopicsByIDs"); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.Topic, len(ids))
	for _, id := range ids {
		if t, ok := s.topics[id]; ok {
			c := *t
			out[id] = &c
		}
	}
	return out, nil
}

// comments

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateComment"); err != nil {
		return err
	}
	c.ID = primitive.NewObjectID()
	cc := *c
	s.comments[c.ID] = &cc
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteComment"); err != nil {
		return err
	}
	delete(s.comments, id)
	return nil
}

func (s *Store) FindCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindCommentsByIDs"); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.Comment, len(ids))
	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			cc := *c
			out[id] = &cc
		}
	}
	return out, nil
}

// CommentCount reports how many comments are stored.
func (s *Store) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// posts

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreatePost"); err != nil {
		return err
	}
	p.ID = primitive.NewObjectID()
	s.posts[p.ID] = clonePost(p)
	s.order = append(s.order, p.ID)
	return nil
}

func (s *Store) FindPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindPost"); err != nil {
		return nil, err
	}
	if p, ok := s.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrNotFound
}

func hasTopic(p *domain.Post, id primitive.ObjectID) bool {
	for _, t := range p.Topics {
		if t == id {
			return true
		}
	}
	return false
}

func (s *Store) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListPosts"); err != nil {
		return nil, err
	}
	out := []domain.Post{}
	for _, id := range s.order {
		p := s.posts[id]
		if f.Topic != nil && !hasTopic(p, *f.Topic) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *clonePost(p))
	}
	if f.ByExpiryDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiresAt.After(out[j].ExpiresAt) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) ExpirePosts(ctx context.Context, now time.Time, ids ...primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ExpirePosts"); err != nil {
		return 0, err
	}
	targets := ids
	if len(ids) == 0 {
		targets = s.order
	}
	var n int64
	for _, id := range targets {
		p, ok := s.posts[id]
		if !ok || !p.Expirable(now) {
			continue
		}
		p.Status = domain.StatusExpired
		p.UpdatedAt = now
		n++
	}
	return n, nil
}

func (s *Store) openPost(id primitive.ObjectID, now time.Time) (*domain.Post, bool) {
	p, ok := s.posts[id]
	if !ok || !p.Open(now) {
		return nil, false
	}
	return p, true
}

func (s *Store) ToggleReaction(ctx context.Context, id primitive.ObjectID, r domain.Reaction, uid primitive.ObjectID, now time.Time) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ToggleReaction"); err != nil {
		return nil, err
	}
	p, ok := s.openPost(id, now)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Toggle(r, uid)
	p.UpdatedAt = now
	return clonePost(p), nil
}

func (s *Store) AppendComment(ctx context.Context, id, commentID primitive.ObjectID, now time.Time) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AppendComment"); err != nil {
		return nil, err
	}
	p, ok := s.openPost(id, now)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Comments = append(p.Comments, commentID)
	p.UpdatedAt = now
	return clonePost(p), nil
}

// SetExpiry rewrites a post's expiry instant without touching its status,
// leaving it stale until the next reconcile.
func (s *Store) SetExpiry(id primitive.ObjectID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		p.ExpiresAt = at
	}
}
