package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostStatus string

const (
	StatusLive    PostStatus = "live"
	StatusExpired PostStatus = "expired"
)

// DefaultPostTTL is how long a post stays open for comments and reactions.
const DefaultPostTTL = 5 * time.Minute

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Message   string               `bson:"message" json:"message"`
	Topics    []primitive.ObjectID `bson:"topics" json:"topics"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Status    PostStatus           `bson:"status" json:"status"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Dislikes  []primitive.ObjectID `bson:"dislikes" json:"dislikes"`
	ExpiresAt time.Time            `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// NewPost returns a live post stamped at now with the given lifetime.
func NewPost(author primitive.ObjectID, title, message string, topics []primitive.ObjectID, now time.Time, ttl time.Duration) *Post {
	if ttl <= 0 {
		ttl = DefaultPostTTL
	}
	now = now.UTC()
	return &Post{
		Title:     title,
		Message:   message,
		Topics:    topics,
		Author:    author,
		Status:    StatusLive,
		Comments:  []primitive.ObjectID{},
		Likes:     []primitive.ObjectID{},
		Dislikes:  []primitive.ObjectID{},
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Expirable is the single predicate both reconciliation paths share:
// a live post whose expiry instant lies strictly before now.
func (p *Post) Expirable(now time.Time) bool {
	return p.Status == StatusLive && p.ExpiresAt.Before(now)
}

// Open reports whether the post still accepts comments and reactions at now.
func (p *Post) Open(now time.Time) bool {
	return p.Status == StatusLive && !p.ExpiresAt.Before(now)
}

func (p *Post) TimeLeft(now time.Time) time.Duration {
	if d := p.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// TimeLeftHuman renders the remaining lifetime in whole minutes.
func TimeLeftHuman(left time.Duration) string {
	if left <= 0 {
		return "expired"
	}
	m := int64(left / time.Minute)
	switch m {
	case 0:
		return "less than a minute"
	case 1:
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func (p *Post) EngagementScore() int {
	return len(p.Likes) + len(p.Dislikes) + len(p.Comments)
}

type Reaction int

const (
	Like Reaction = iota + 1
	Dislike
)

func (r Reaction) String() string {
	switch r {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	}
	return "unknown"
}

// Field is the post field holding the reaction's member set.
func (r Reaction) Field() string {
	if r == Dislike {
		return "dislikes"
	}
	return "likes"
}

// Opposite is the reaction whose set must not contain the same user.
func (r Reaction) Opposite() Reaction {
	if r == Dislike {
		return Like
	}
	return Dislike
}

func (p *Post) set(r Reaction) *[]primitive.ObjectID {
	if r == Dislike {
		return &p.Dislikes
	}
	return &p.Likes
}

// Toggle applies a reaction by uid: the user leaves the opposite set, then
// membership in the reaction's own set flips. Both sets stay disjoint.
func (p *Post) Toggle(r Reaction, uid primitive.ObjectID) {
	other := p.set(r.Opposite())
	*other = without(*other, uid)

	own := p.set(r)
	if contains(*own, uid) {
		*own = without(*own, uid)
		return
	}
	*own = append(*own, uid)
}

func (p *Post) HasReaction(r Reaction, uid primitive.ObjectID) bool {
	return contains(*p.set(r), uid)
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func without(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// PostFilter narrows post listings. Zero values mean "any".
type PostFilter struct {
	Topic  *primitive.ObjectID
	Status PostStatus
	Limit  int
	// ByExpiryDesc orders by expires_at descending instead of insertion order.
	ByExpiryDesc bool
}
