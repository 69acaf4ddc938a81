package board_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/piazza-service/internal/board"
	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"github.com/tazhibayda/piazza-service/internal/repo/memstore"
	"github.com/tazhibayda/piazza-service/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(d time.Duration) {
	c.mu.Lock()
	c.now = t0.Add(d)
	c.mu.Unlock()
}

type published struct {
	key   string
	event any
}

type recorder struct{ ch chan published }

func (r *recorder) Publish(_ context.Context, _, key string, event any, _ string) error {
	r.ch <- published{key, event}
	return nil
}
func (r *recorder) Close() error { return nil }

func (r *recorder) next(t *testing.T) published {
	t.Helper()
	select {
	case p := <-r.ch:
		return p
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
	return published{}
}

type fixture struct {
	ctx   context.Context
	store *memstore.Store
	clock *clock
	svc   *board.Service
	ev    *recorder
	topic *domain.Topic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	security.Cost = 4
	f := &fixture{
		ctx:   context.Background(),
		store: memstore.New(),
		clock: &clock{now: t0},
		ev:    &recorder{ch: make(chan published, 64)},
	}
	f.svc = board.New(f.store,
		board.WithClock(f.clock.Now),
		board.WithPublisher(f.ev, "test.events"),
		board.WithPostTTL(5*time.Minute),
	)
	var err error
	f.topic, err = f.svc.CreateTopic(f.ctx, board.TopicInput{Name: "Tech"})
	require.NoError(t, err)
	return f
}

func (f *fixture) user(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	u, err := f.svc.Register(f.ctx, board.RegisterInput{Username: name, Email: name + "@example.com", Password: "secret123"})
	require.NoError(t, err)
	return u.ID
}

func (f *fixture) post(t *testing.T, author primitive.ObjectID, title string) primitive.ObjectID {
	t.Helper()
	v, err := f.svc.CreatePost(f.ctx, author, board.PostInput{
		Title: title, Message: "message body", Topics: []string{f.topic.ID.Hex()},
	})
	require.NoError(t, err)
	return v.ID
}

func TestScenario_LikeBeforeAndAfterExpiry(t *testing.T) {
	f := newFixture(t)
	a, b := f.user(t, "anna"), f.user(t, "bert")
	id := f.post(t, a, "first post")

	f.clock.Set(4 * time.Minute)
	v, err := f.svc.Like(f.ctx, id, a)
	require.NoError(t, err)
	assert.EqualValues(t, 60000, v.TimeLeftMs)
	assert.Equal(t, "1 minute", v.TimeLeft)

	f.clock.Set(6 * time.Minute)
	_, err = f.svc.Like(f.ctx, id, b)
	assert.ErrorIs(t, err, domain.ErrExpired)

	v, err = f.svc.GetPost(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, v.Status)
	assert.Equal(t, "expired", v.TimeLeft)
	assert.Len(t, v.Likes, 1)
}

func TestScenario_LikeThenDislike(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	id := f.post(t, a, "first post")

	_, err := f.svc.Like(f.ctx, id, a)
	require.NoError(t, err)
	v, err := f.svc.Dislike(f.ctx, id, a)
	require.NoError(t, err)

	assert.Empty(t, v.Likes)
	require.Len(t, v.Dislikes, 1)
	assert.Equal(t, "anna", v.Dislikes[0].Username)
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	f := newFixture(t)
	a, b := f.user(t, "anna"), f.user(t, "bert")
	id := f.post(t, a, "first post")
	_, err := f.svc.Like(f.ctx, id, b)
	require.NoError(t, err)

	_, err = f.svc.Like(f.ctx, id, a)
	require.NoError(t, err)
	v, err := f.svc.Like(f.ctx, id, a)
	require.NoError(t, err)

	require.Len(t, v.Likes, 1)
	assert.Equal(t, b, v.Likes[0].ID)
}

func TestScenario_MostActive(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.user(t, "anna"), f.user(t, "bert"), f.user(t, "carl")
	p1 := f.post(t, a, "post one")
	p2 := f.post(t, a, "post two")

	for _, u := range []primitive.ObjectID{b, c} {
		_, err := f.svc.Like(f.ctx, p1, u)
		require.NoError(t, err)
	}
	_, err := f.svc.Like(f.ctx, p2, b)
	require.NoError(t, err)
	_, err = f.svc.Dislike(f.ctx, p2, c)
	require.NoError(t, err)
	_, err = f.svc.AddComment(f.ctx, p2, a, board.CommentInput{Message: "hi"})
	require.NoError(t, err)

	v, err := f.svc.MostActive(f.ctx, "Tech")
	require.NoError(t, err)
	assert.Equal(t, p2, v.ID)
	assert.Equal(t, 3, v.EngagementScore)
}

func TestMostActiveTieKeepsFirst(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	p1 := f.post(t, a, "post one")
	f.post(t, a, "post two")

	v, err := f.svc.MostActive(f.ctx, f.topic.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p1, v.ID)
}

func TestMostActiveEmptyTopic(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MostActive(f.ctx, "Tech")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScenario_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.user(t, "anna")
	_, err := f.svc.Register(f.ctx, board.RegisterInput{Username: "other", Email: "ANNA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Register(f.ctx, board.RegisterInput{Username: "anna", Email: "new@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	f.user(t, "anna")

	u, err := f.svc.Authenticate(f.ctx, board.LoginInput{Email: "anna@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "anna", u.Username)

	_, err = f.svc.Authenticate(f.ctx, board.LoginInput{Email: "anna@example.com", Password: "wrong-one"})
	assert.ErrorIs(t, err, domain.ErrAuthRejected)
	_, err = f.svc.Authenticate(f.ctx, board.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrAuthRejected)
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	p1 := f.post(t, a, "post one")
	f.post(t, a, "post two")

	f.clock.Set(10 * time.Minute)
	done, err := f.svc.ReconcileOne(f.ctx, p1)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = f.svc.ReconcileOne(f.ctx, p1)
	require.NoError(t, err)
	assert.False(t, done)

	n, err := f.svc.ReconcileAllExpired(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "only the post the lazy path missed")
	n, err = f.svc.ReconcileAllExpired(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	done, err = f.svc.ReconcileOne(f.ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, done)
}

func TestSweepEmitsExpiredEvent(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	f.post(t, a, "post one")
	require.Equal(t, queue.KeyPostCreated, f.ev.next(t).key)

	f.clock.Set(5*time.Minute + time.Second)
	n, err := f.svc.ReconcileAllExpired(f.ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got := f.ev.next(t)
	assert.Equal(t, queue.KeyPostsExpired, got.key)
	assert.EqualValues(t, 1, got.event.(queue.PostsExpired).Count)
}

func TestStaleStatusIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	id := f.post(t, a, "post one")

	// status still says live; only the expiry instant moved into the past
	f.store.SetExpiry(id, t0.Add(-time.Second))

	_, err := f.svc.AddComment(f.ctx, id, a, board.CommentInput{Message: "too late"})
	assert.ErrorIs(t, err, domain.ErrExpired)
	_, err = f.svc.Dislike(f.ctx, id, a)
	assert.ErrorIs(t, err, domain.ErrExpired)
	assert.Zero(t, f.store.CommentCount())
}

func TestCommentCompensatesFailedAppend(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	id := f.post(t, a, "post one")

	f.store.Fail = func(op string) error {
		if op == "AppendComment" {
			return errors.New("write conflict")
		}
		return nil
	}
	_, err := f.svc.AddComment(f.ctx, id, a, board.CommentInput{Message: "lost"})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Zero(t, f.store.CommentCount(), "orphan comment left behind")

	f.store.Fail = nil
	v, err := f.svc.AddComment(f.ctx, id, a, board.CommentInput{Message: "kept"})
	require.NoError(t, err)
	require.Len(t, v.Comments, 1)
	assert.Equal(t, "anna", v.Comments[0].Author.Username)
	assert.Equal(t, 1, f.store.CommentCount())
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	id := f.post(t, a, "post one")

	_, err := f.svc.AddComment(f.ctx, id, a, board.CommentInput{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.AddComment(f.ctx, primitive.NewObjectID(), a, board.CommentInput{Message: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePostRejectsUnknownTopic(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	_, err := f.svc.CreatePost(f.ctx, a, board.PostInput{
		Title: "hello", Message: "message", Topics: []string{primitive.NewObjectID().Hex()},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.CreatePost(f.ctx, a, board.PostInput{Title: "hello", Message: "message"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStorageFailuresAreClassified(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	f.store.Fail = func(op string) error { return errors.New("connection reset") }

	_, err := f.svc.ListPosts(f.ctx, board.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = f.svc.ReconcileAllExpired(f.ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = f.svc.Identify(f.ctx, a.Hex())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestListAndHistory(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")
	p1 := f.post(t, a, "post one")
	f.clock.Set(time.Minute)
	p2 := f.post(t, a, "post two")
	f.clock.Set(2 * time.Minute)
	p3 := f.post(t, a, "post three")

	f.clock.Set(6*time.Minute + 30*time.Second)
	_, err := f.svc.ReconcileAllExpired(f.ctx)
	require.NoError(t, err)

	live, err := f.svc.ListPosts(f.ctx, board.ListQuery{Topic: "Tech", Status: "live"})
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, p3, live[0].ID)

	all, err := f.svc.ListPosts(f.ctx, board.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	hist, err := f.svc.History(f.ctx, "Tech")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, p2, hist[0].ID, "most recently expired first")
	assert.Equal(t, p1, hist[1].ID)

	_, err = f.svc.ListPosts(f.ctx, board.ListQuery{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.History(f.ctx, "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingsArePageBounded(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "anna")

	const total = board.PageSize + 5
	ids := make([]primitive.ObjectID, 0, total)
	for i := 0; i < total; i++ {
		f.clock.Set(time.Duration(i) * time.Second)
		ids = append(ids, f.post(t, a, fmt.Sprintf("post %02d", i)))
	}

	listed, err := f.svc.ListPosts(f.ctx, board.ListQuery{Topic: "Tech"})
	require.NoError(t, err)
	require.Len(t, listed, board.PageSize)
	assert.Equal(t, ids[0], listed[0].ID, "creation order")
	assert.Equal(t, ids[board.PageSize-1], listed[board.PageSize-1].ID)

	f.clock.Set(time.Hour)
	n, err := f.svc.ReconcileAllExpired(f.ctx)
	require.NoError(t, err)
	require.EqualValues(t, total, n)

	hist, err := f.svc.History(f.ctx, "Tech")
	require.NoError(t, err)
	require.Len(t, hist, board.PageSize)
	assert.Equal(t, ids[total-1], hist[0].ID, "most recently expired first")
	assert.Equal(t, ids[total-board.PageSize], hist[board.PageSize-1].ID)
}

func TestConcurrentReactionsStayDisjoint(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	id := f.post(t, author, "busy post")

	const n = 8
	users := make([]primitive.ObjectID, n)
	for i := range users {
		users[i] = f.user(t, fmt.Sprintf("user%02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for _, u := range users {
		wg.Add(2)
		go func(u primitive.ObjectID) {
			defer wg.Done()
			_, err := f.svc.Like(f.ctx, id, u)
			errs <- err
		}(u)
		go func(u primitive.ObjectID) {
			defer wg.Done()
			_, err := f.svc.Dislike(f.ctx, id, u)
			errs <- err
		}(u)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	v, err := f.svc.GetPost(f.ctx, id)
	require.NoError(t, err)
	seen := map[primitive.ObjectID]int{}
	for _, r := range v.Likes {
		seen[r.ID]++
	}
	for _, r := range v.Dislikes {
		seen[r.ID]++
	}
	for _, u := range users {
		assert.Equal(t, 1, seen[u], "user %s must sit in exactly one set", u.Hex())
	}
	assert.Len(t, seen, n)
}
