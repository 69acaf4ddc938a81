package board

import (
	"context"
	"errors"
	"strings"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"github.com/tazhibayda/piazza-service/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AddComment appends a comment by uid to a live post and returns the
// decorated post. Comment creation and the append are two writes; if the
// append fails the comment is deleted again so no orphan stays behind.
func (s *Service) AddComment(ctx context.Context, postID, uid primitive.ObjectID, in CommentInput) (*PostView, error) {
	if _, err := s.guard(ctx, postID); err != nil {
		return nil, err
	}
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		PostID:    postID,
		Author:    uid,
		Message:   in.Message,
		CreatedAt: s.clock(),
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, storageErr("create comment", err)
	}

	p, err := s.store.AppendComment(ctx, postID, c.ID, s.clock())
	if err != nil {
		if derr := s.store.DeleteComment(context.WithoutCancel(ctx), c.ID); derr != nil {
			log.WithDD(ctx, s.log).Error("orphan comment left behind",
				zap.String("comment_id", c.ID.Hex()), zap.String("post_id", postID.Hex()), zap.Error(derr))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.missed(ctx, postID)
		}
		return nil, storageErr("append comment", err)
	}

	views, lk, err := s.decorate(ctx, []domain.Post{*p}, uid)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, queue.KeyPostCommented, queue.PostCommented{
		PostID:      p.ID,
		Title:       p.Title,
		AuthorID:    p.Author,
		AuthorEmail: lk.email(p.Author),
		CommentID:   c.ID,
		By:          lk.user(uid).Username,
	})
	return &views[0], nil
}
