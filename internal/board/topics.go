package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Service) CreateTopic(ctx context.Context, in TopicInput) (*domain.Topic, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	t := &domain.Topic{Name: in.Name}
	if err := s.store.CreateTopic(ctx, t); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: topic %q already exists", domain.ErrConflict, in.Name)
		}
		return nil, storageErr("create topic", err)
	}
	return t, nil
}

func (s *Service) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	ts, err := s.store.ListTopics(ctx)
	return ts, storageErr("list topics", err)
}

// ResolveTopic accepts either a topic id or a topic name.
func (s *Service) ResolveTopic(ctx context.Context, ref string) (*domain.Topic, error) {
	ref = strings.TrimSpace(ref)
	var (
		t   *domain.Topic
		err error
	)
	if id, perr := primitive.ObjectIDFromHex(ref); perr == nil {
		t, err = s.store.FindTopicByID(ctx, id)
		if !errors.Is(err, domain.ErrNotFound) {
			return t, storageErr("find topic", err)
		}
	}
	t, err = s.store.FindTopicByName(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: topic %q", domain.ErrNotFound, ref)
	}
	return t, storageErr("find topic", err)
}
