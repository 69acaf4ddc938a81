package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestExpirePostsOnlyTouchesExpirable(t *testing.T) {
	ctx := context.Background()
	s := New()
	short := domain.NewPost(primitive.NewObjectID(), "a", "m", nil, t0, time.Minute)
	long := domain.NewPost(primitive.NewObjectID(), "b", "m", nil, t0, time.Hour)
	require.NoError(t, s.CreatePost(ctx, short))
	require.NoError(t, s.CreatePost(ctx, long))

	n, err := s.ExpirePosts(ctx, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n, "expiry instant is not yet past")

	n, err = s.ExpirePosts(ctx, t0.Add(2*time.Minute), long.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.ExpirePosts(ctx, t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.FindPost(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	assert.Equal(t, t0.Add(2*time.Minute), got.UpdatedAt)
}

func TestGuardedWritesRefuseClosedPosts(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := domain.NewPost(primitive.NewObjectID(), "a", "m", nil, t0, time.Minute)
	require.NoError(t, s.CreatePost(ctx, p))
	uid := primitive.NewObjectID()

	_, err := s.ToggleReaction(ctx, p.ID, domain.Like, uid, t0.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.AppendComment(ctx, p.ID, primitive.NewObjectID(), t0.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.ToggleReaction(ctx, p.ID, domain.Like, uid, t0)
	require.NoError(t, err)
	assert.True(t, got.HasReaction(domain.Like, uid))
}

func TestReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := domain.NewPost(primitive.NewObjectID(), "a", "m", nil, t0, time.Minute)
	require.NoError(t, s.CreatePost(ctx, p))

	got, err := s.FindPost(ctx, p.ID)
	require.NoError(t, err)
	got.Likes = append(got.Likes, primitive.NewObjectID())

	again, err := s.FindPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Likes)
}

func TestUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateUser(ctx, &domain.User{Username: "anna", Email: "anna@example.com"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &domain.User{Username: "anna2", Email: "anna@example.com"}), domain.ErrConflict)
	require.NoError(t, s.CreateTopic(ctx, &domain.Topic{Name: "Tech"}))
	assert.ErrorIs(t, s.CreateTopic(ctx, &domain.Topic{Name: "Tech"}), domain.ErrConflict)
}

func TestListPostsByExpiryDesc(t *testing.T) {
	ctx := context.Background()
	s := New()
	topic := primitive.NewObjectID()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		p := domain.NewPost(primitive.NewObjectID(), "t", "m", []primitive.ObjectID{topic}, t0.Add(time.Duration(i)*time.Minute), time.Minute)
		require.NoError(t, s.CreatePost(ctx, p))
		ids = append(ids, p.ID)
	}
	require.NoError(t, s.CreatePost(ctx, domain.NewPost(primitive.NewObjectID(), "t", "m", nil, t0, time.Minute)))

	out, err := s.ListPosts(ctx, domain.PostFilter{Topic: &topic, ByExpiryDesc: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, ids[2], out[0].ID)
	assert.Equal(t, ids[1], out[1].ID)
}

func TestConcurrentTogglesAreAtomic(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := domain.NewPost(primitive.NewObjectID(), "a", "m", nil, t0, time.Hour)
	require.NoError(t, s.CreatePost(ctx, p))

	const n = 16
	users := make([]primitive.ObjectID, n)
	for i := range users {
		users[i] = primitive.NewObjectID()
	}

	var wg sync.WaitGroup
	for _, u := range users {
		for _, r := range []domain.Reaction{domain.Like, domain.Dislike} {
			wg.Add(1)
			go func(u primitive.ObjectID, r domain.Reaction) {
				defer wg.Done()
				_, err := s.ToggleReaction(ctx, p.ID, r, u, t0)
				assert.NoError(t, err)
			}(u, r)
		}
	}
	wg.Wait()

	got, err := s.FindPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, len(got.Likes)+len(got.Dislikes))
	for _, u := range users {
		assert.NotEqual(t, got.HasReaction(domain.Like, u), got.HasReaction(domain.Dislike, u),
			"user %s must sit in exactly one set", u.Hex())
	}
}
