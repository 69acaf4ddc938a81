package repo

import (
	"context"
	"errors"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	res, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.Post, error) {
	filter := bson.M{}
	if f.Topic != nil {
		filter["topics"] = *f.Topic
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if f.ByExpiryDesc {
		opts.SetSort(bson.D{{Key: "expires_at", Value: -1}, {Key: "_id", Value: 1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.colPosts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// expirable matches live posts whose expiry instant is strictly before now.
func expirable(now time.Time) bson.M {
	return bson.M{"status": domain.StatusLive, "expires_at": bson.M{"$lt": now}}
}

// open matches a post that still takes comments and reactions at now.
func open(id primitive.ObjectID, now time.Time) bson.M {
	return bson.M{"_id": id, "status": domain.StatusLive, "expires_at": bson.M{"$gte": now}}
}

func (s *Store) ExpirePosts(ctx context.Context, now time.Time, ids ...primitive.ObjectID) (int64, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.posts.expire",
		tracer.Tag("targets", len(ids)),
	)
	defer sp.Finish()

	filter := expirable(now)
	if len(ids) == 1 {
		filter["_id"] = ids[0]
	} else if len(ids) > 1 {
		filter["_id"] = bson.M{"$in": ids}
	}
	res, err := s.colPosts.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"status": domain.StatusExpired, "updated_at": now},
	})
	if err != nil {
		sp.SetTag("error", err)
		return 0, err
	}
	sp.SetTag("modified", res.ModifiedCount)
	return res.ModifiedCount, nil
}

func filterOut(arr string, uid primitive.ObjectID) bson.D {
	return bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{arr, bson.A{}}}}},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", uid}}}},
	}}}
}

// togglePipeline is Post.Toggle as a single update pipeline: uid leaves
// the opposite set and flips membership in its own. Both $set expressions
// read the pre-update document, so the update is one atomic step.
func togglePipeline(r domain.Reaction, uid primitive.ObjectID, now time.Time) mongo.Pipeline {
	own := "$" + r.Field()
	other := r.Opposite().Field()
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: other, Value: filterOut("$"+other, uid)},
			{Key: r.Field(), Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{uid, bson.D{{Key: "$ifNull", Value: bson.A{own, bson.A{}}}}}}},
				filterOut(own, uid),
				bson.D{{Key: "$concatArrays", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{own, bson.A{}}}}, bson.A{uid}}}},
			}}}},
			{Key: "updated_at", Value: now},
		}}},
	}
}

func (s *Store) ToggleReaction(ctx context.Context, id primitive.ObjectID, r domain.Reaction, uid primitive.ObjectID, now time.Time) (*domain.Post, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.posts.toggle",
		tracer.Tag("reaction", r.String()),
		tracer.Tag("post_id", id.Hex()),
	)
	defer sp.Finish()

	return s.updateOpen(ctx, sp, id, now, togglePipeline(r, uid, now))
}

func (s *Store) AppendComment(ctx context.Context, id, commentID primitive.ObjectID, now time.Time) (*domain.Post, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.posts.append_comment",
		tracer.Tag("post_id", id.Hex()),
	)
	defer sp.Finish()

	return s.updateOpen(ctx, sp, id, now, bson.M{
		"$push": bson.M{"comments": commentID},
		"$set":  bson.M{"updated_at": now},
	})
}

func (s *Store) updateOpen(ctx context.Context, sp ddtrace.Span, id primitive.ObjectID, now time.Time, update any) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx, open(id, now), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, err
	}
	return &p, nil
}
