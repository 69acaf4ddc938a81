package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateTopic(ctx context.Context, t *domain.Topic) error {
	res, err := s.colTopics.InsertOne(ctx, t)
	if IsDup(err) {
		return fmt.Errorf("%w: topic name", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (s *Store) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	cur, err := s.colTopics.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Topic{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) findTopic(ctx context.Context, filter bson.M) (*domain.Topic, error) {
	var t domain.Topic
	err := s.colTopics.FindOne(ctx, filter).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) FindTopicByID(ctx context.Context, id primitive.ObjectID) (*domain.Topic, error) {
	return s.findTopic(ctx, bson.M{"_id": id})
}

func (s *Store) FindTopicByName(ctx context.Context, name string) (*domain.Topic, error) {
	return s.findTopic(ctx, bson.M{"name": name})
}

func (s *Store) FindTopicsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Topic, error) {
	out := make(map[primitive.ObjectID]*domain.Topic, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.colTopics.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var t domain.Topic
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out[t.ID] = &t
	}
	return out, cur.Err()
}
