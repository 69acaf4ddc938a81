package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewPostIsLive(t *testing.T) {
	p := NewPost(primitive.NewObjectID(), "title", "message", nil, t0, 0)
	assert.Equal(t, StatusLive, p.Status)
	assert.Equal(t, t0.Add(DefaultPostTTL), p.ExpiresAt)
	assert.NotNil(t, p.Likes)
	assert.NotNil(t, p.Dislikes)
	assert.NotNil(t, p.Comments)
}

func TestExpiryBoundary(t *testing.T) {
	p := NewPost(primitive.NewObjectID(), "title", "message", nil, t0, time.Minute)
	at := p.ExpiresAt

	assert.False(t, p.Expirable(at), "expiry instant itself is still open")
	assert.True(t, p.Open(at))
	assert.True(t, p.Expirable(at.Add(time.Millisecond)))
	assert.False(t, p.Open(at.Add(time.Millisecond)))

	p.Status = StatusExpired
	assert.False(t, p.Expirable(at.Add(time.Hour)), "already expired posts are not expirable again")
	assert.False(t, p.Open(t0))
}

func TestTimeLeft(t *testing.T) {
	p := NewPost(primitive.NewObjectID(), "title", "message", nil, t0, 5*time.Minute)
	assert.Equal(t, time.Minute, p.TimeLeft(t0.Add(4*time.Minute)))
	assert.Zero(t, p.TimeLeft(t0.Add(6*time.Minute)))

	for d, want := range map[time.Duration]string{
		0:                              "expired",
		-time.Second:                   "expired",
		30 * time.Second:               "less than a minute",
		time.Minute:                    "1 minute",
		time.Minute + 59*time.Second:   "1 minute",
		4*time.Minute + 10*time.Second: "4 minutes",
	} {
		assert.Equal(t, want, TimeLeftHuman(d), d.String())
	}
}

func TestToggleKeepsSetsDisjoint(t *testing.T) {
	u := primitive.NewObjectID()
	p := NewPost(primitive.NewObjectID(), "title", "message", nil, t0, 0)

	p.Toggle(Like, u)
	assert.True(t, p.HasReaction(Like, u))

	p.Toggle(Dislike, u)
	assert.False(t, p.HasReaction(Like, u))
	assert.True(t, p.HasReaction(Dislike, u))

	p.Toggle(Dislike, u)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Dislikes)

	// toggling twice is the identity
	v := primitive.NewObjectID()
	p.Toggle(Like, v)
	before := append([]primitive.ObjectID{}, p.Likes...)
	p.Toggle(Like, u)
	p.Toggle(Like, u)
	assert.Equal(t, before, p.Likes)
}

func TestEngagementScore(t *testing.T) {
	p := NewPost(primitive.NewObjectID(), "title", "message", nil, t0, 0)
	p.Toggle(Like, primitive.NewObjectID())
	p.Toggle(Dislike, primitive.NewObjectID())
	p.Comments = append(p.Comments, primitive.NewObjectID())
	assert.Equal(t, 3, p.EngagementScore())
}

func TestReactionFields(t *testing.T) {
	assert.Equal(t, "likes", Like.Field())
	assert.Equal(t, "dislikes", Dislike.Field())
	assert.Equal(t, Dislike, Like.Opposite())
	assert.Equal(t, "dislike", Dislike.String())
}
