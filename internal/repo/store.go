package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	DB          *mongo.Database
	colUsers    *mongo.Collection
	colTopics   *mongo.Collection
	colPosts    *mongo.Collection
	colComments *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:      cli,
		DB:          db,
		colUsers:    db.Collection("users"),
		colTopics:   db.Collection("topics"),
		colPosts:    db.Collection("posts"),
		colComments: db.Collection("comments"),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the unique keys the board relies on for conflict
// detection and the indexes behind the sweep and topic queries.
// Posts carry no TTL index: expired posts stay readable for history.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colTopics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_name"),
	})
	if err != nil {
		return err
	}

	_, err = s.colPosts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// sweep: status=live AND expires_at<now
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("status_expires"),
		},
		{
			// history: topic + status, newest expiry first
			Keys:    bson.D{{Key: "topics", Value: 1}, {Key: "status", Value: 1}, {Key: "expires_at", Value: -1}},
			Options: options.Index().SetName("topic_status_expires_desc"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colComments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("post_created"),
	})
	return err
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

// dupKey names the unique index a duplicate-key error tripped on, if any.
func dupKey(err error) string {
	msg := err.Error()
	for _, idx := range []string{"uniq_email", "uniq_username", "uniq_name"} {
		if strings.Contains(msg, idx) {
			return strings.TrimPrefix(idx, "uniq_")
		}
	}
	return ""
}
