package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"github.com/tazhibayda/piazza-service/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreatePost publishes a live post. Every topic id must resolve to an
// existing topic; the check happens once, here.
func (s *Service) CreatePost(ctx context.Context, author primitive.ObjectID, in PostInput) (*PostView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	var topics idSet
	for _, hex := range in.Topics {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: topic id %q", domain.ErrValidation, hex)
		}
		topics.add(id)
	}
	found, err := s.store.FindTopicsByIDs(ctx, topics.ids)
	if err != nil {
		return nil, storageErr("find topics", err)
	}
	for _, id := range topics.ids {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: topic %s", domain.ErrNotFound, id.Hex())
		}
	}

	p := domain.NewPost(author, in.Title, in.Message, topics.ids, s.clock(), s.ttl)
	if err := s.store.CreatePost(ctx, p); err != nil {
		return nil, storageErr("create post", err)
	}
	log.WithDD(ctx, s.log).Info("post created",
		zap.String("post_id", p.ID.Hex()), zap.Time("expires_at", p.ExpiresAt))
	s.emit(ctx, queue.KeyPostCreated, queue.PostCreated{
		PostID: p.ID, Title: p.Title, AuthorID: p.Author, Topics: p.Topics, ExpiresAt: p.ExpiresAt,
	})

	views, _, err := s.decorate(ctx, []domain.Post{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetPost reconciles the post's status before reading it, so a post past
// its expiry is always reported as expired.
func (s *Service) GetPost(ctx context.Context, id primitive.ObjectID) (*PostView, error) {
	if _, err := s.ReconcileOne(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	views, _, err := s.decorate(ctx, []domain.Post{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

type ListQuery struct {
	Topic  string // topic id or name; empty for all topics
	Status string // "live", "expired" or empty
}

func parseStatus(s string) (domain.PostStatus, error) {
	switch st := domain.PostStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", domain.StatusLive, domain.StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("%w: \"status\" must be one of [live, expired]", domain.ErrValidation)
}

// ListPosts returns at most PageSize posts in creation order.
func (s *Service) ListPosts(ctx context.Context, q ListQuery) ([]PostView, error) {
	status, err := parseStatus(q.Status)
	if err != nil {
		return nil, err
	}
	f := domain.PostFilter{Status: status, Limit: PageSize}
	if q.Topic != "" {
		t, err := s.ResolveTopic(ctx, q.Topic)
		if err != nil {
			return nil, err
		}
		f.Topic = &t.ID
	}
	posts, err := s.store.ListPosts(ctx, f)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	views, _, err := s.decorate(ctx, posts)
	return views, err
}

// MostActive returns the topic's post with the highest engagement score.
// Posts are scanned in creation order and the first one wins a tie.
func (s *Service) MostActive(ctx context.Context, topic string) (*PostView, error) {
	t, err := s.ResolveTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.ListPosts(ctx, domain.PostFilter{Topic: &t.ID})
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	best := -1
	for i := range posts {
		if best < 0 || posts[i].EngagementScore() > posts[best].EngagementScore() {
			best = i
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("%w: no posts in topic %q", domain.ErrNotFound, t.Name)
	}
	views, _, err := s.decorate(ctx, posts[best:best+1])
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// History lists the topic's expired posts, most recently expired first,
// with every like, dislike and comment expanded per user.
func (s *Service) History(ctx context.Context, topic string) ([]HistoryView, error) {
	t, err := s.ResolveTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.ListPosts(ctx, domain.PostFilter{
		Topic:        &t.ID,
		Status:       domain.StatusExpired,
		Limit:        PageSize,
		ByExpiryDesc: true,
	})
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	lk, err := s.load(ctx, posts)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]HistoryView, 0, len(posts))
	for i := range posts {
		out = append(out, lk.history(&posts[i], now))
	}
	return out, nil
}
