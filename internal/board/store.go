package board

import (
	"context"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the entity store the board runs on. Lookups by id return
// domain.ErrNotFound when the record is absent; unique-key violations
// return domain.ErrConflict.
type Store interface {
	UserStore
	TopicStore
	PostStore
	CommentStore
}

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error)
}

type TopicStore interface {
	CreateTopic(ctx context.Context, t *domain.Topic) error
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	FindTopicByID(ctx context.Context, id primitive.ObjectID) (*domain.Topic, error)
	FindTopicByName(ctx context.Context, name string) (*domain.Topic, error)
	FindTopicsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Topic, error)
}

type PostStore interface {
	CreatePost(ctx context.Context, p *domain.Post) error
	FindPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.Post, error)

	// ExpirePosts sets status=expired on every post matching
	// status==live AND expires_at<now, restricted to ids when given.
	// It is the one primitive behind both reconciliation paths.
	ExpirePosts(ctx context.Context, now time.Time, ids ...primitive.ObjectID) (int64, error)

	// ToggleReaction and AppendComment only touch a post that is still
	// open at now (live and not past expires_at); otherwise they return
	// domain.ErrNotFound and change nothing.
	ToggleReaction(ctx context.Context, id primitive.ObjectID, r domain.Reaction, uid primitive.ObjectID, now time.Time) (*domain.Post, error)
	AppendComment(ctx context.Context, id, commentID primitive.ObjectID, now time.Time) (*domain.Post, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, c *domain.Comment) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	FindCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Comment, error)
}
