package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/metrics"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ReconcileOne expires a single post if it is live and past expires_at.
// It reports whether this call performed the transition; repeat calls
// and calls on missing posts are no-ops.
func (s *Service) ReconcileOne(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.store.ExpirePosts(ctx, s.clock(), id)
	if err != nil {
		return false, storageErr("expire post", err)
	}
	if n > 0 {
		metrics.PostsExpired.WithLabelValues("lazy").Add(float64(n))
	}
	return n > 0, nil
}

// ReconcileAllExpired expires every live post past expires_at in one bulk
// conditional update and returns how many posts it transitioned.
func (s *Service) ReconcileAllExpired(ctx context.Context) (int64, error) {
	now := s.clock()
	n, err := s.store.ExpirePosts(ctx, now)
	if err != nil {
		return 0, storageErr("expire posts", err)
	}
	if n > 0 {
		metrics.PostsExpired.WithLabelValues("sweep").Add(float64(n))
		s.emit(ctx, queue.KeyPostsExpired, queue.PostsExpired{Count: n, At: now})
		log.WithDD(ctx, s.log).Info("posts expired", zap.Int64("count", n))
	}
	return n, nil
}

// guard admits a mutation only on a post that is still live after a
// fresh reconcile. The order find, reconcile, re-read is required: the
// stored status may be stale until reconcile runs.
func (s *Service) guard(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	if _, err := s.findPost(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.ReconcileOne(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.StatusExpired {
		return nil, fmt.Errorf("%w: post %s", domain.ErrExpired, id.Hex())
	}
	return p, nil
}

// missed explains why a guarded write matched nothing: the post vanished
// or expired between the guard and the write.
func (s *Service) missed(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.guard(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: post %s", domain.ErrExpired, id.Hex())
}

func (s *Service) findPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	p, err := s.store.FindPost(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: post %s", domain.ErrNotFound, id.Hex())
	}
	return p, storageErr("find post", err)
}
