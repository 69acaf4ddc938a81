package repo

import (
	"context"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	res, err := s.colComments.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// DeleteComment only serves as compensation for a comment whose append to
// its post failed; comments are otherwise never removed.
func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.colComments.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) FindCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Comment, error) {
	out := make(map[primitive.ObjectID]*domain.Comment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.colComments.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var c domain.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out[c.ID] = &c
	}
	return out, cur.Err()
}
