package queue

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routing keys on the board exchange.
const (
	KeyPostCreated   = "post.created"
	KeyPostCommented = "post.commented"
	KeyPostReacted   = "post.reacted"
	KeyPostsExpired  = "posts.expired"
)

type PostCreated struct {
	PostID    primitive.ObjectID   `json:"post_id"`
	Title     string               `json:"title"`
	AuthorID  primitive.ObjectID   `json:"author_id"`
	Topics    []primitive.ObjectID `json:"topics"`
	ExpiresAt time.Time            `json:"expires_at"`
}

type PostCommented struct {
	PostID      primitive.ObjectID `json:"post_id"`
	Title       string             `json:"title"`
	AuthorID    primitive.ObjectID `json:"author_id"`
	AuthorEmail string             `json:"author_email"`
	CommentID   primitive.ObjectID `json:"comment_id"`
	By          string             `json:"by"`
}

type PostReacted struct {
	PostID      primitive.ObjectID `json:"post_id"`
	Title       string             `json:"title"`
	AuthorID    primitive.ObjectID `json:"author_id"`
	AuthorEmail string             `json:"author_email"`
	Reaction    string             `json:"reaction"`
	Active      bool               `json:"active"` // false when the toggle removed the reaction
	By          string             `json:"by"`
}

type PostsExpired struct {
	Count int64     `json:"count"`
	At    time.Time `json:"at"`
}
