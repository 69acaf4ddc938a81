package board

import (
	"context"
	"errors"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like toggles uid's like on a live post and drops any dislike by uid.
func (s *Service) Like(ctx context.Context, postID, uid primitive.ObjectID) (*PostView, error) {
	return s.react(ctx, postID, uid, domain.Like)
}

// Dislike toggles uid's dislike on a live post and drops any like by uid.
func (s *Service) Dislike(ctx context.Context, postID, uid primitive.ObjectID) (*PostView, error) {
	return s.react(ctx, postID, uid, domain.Dislike)
}

func (s *Service) react(ctx context.Context, postID, uid primitive.ObjectID, r domain.Reaction) (*PostView, error) {
	if _, err := s.guard(ctx, postID); err != nil {
		return nil, err
	}
	p, err := s.store.ToggleReaction(ctx, postID, r, uid, s.clock())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, s.missed(ctx, postID)
	}
	if err != nil {
		return nil, storageErr("toggle "+r.String(), err)
	}

	views, lk, err := s.decorate(ctx, []domain.Post{*p}, uid)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, queue.KeyPostReacted, queue.PostReacted{
		PostID:      p.ID,
		Title:       p.Title,
		AuthorID:    p.Author,
		AuthorEmail: lk.email(p.Author),
		Reaction:    r.String(),
		Active:      p.HasReaction(r, uid),
		By:          lk.user(uid).Username,
	})
	return &views[0], nil
}
