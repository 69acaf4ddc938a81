package board

import (
	"context"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	Author    domain.UserRef     `json:"author"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"created_at"`
}

// PostView is a post as returned to clients, with references expanded and
// the derived time/engagement fields filled in.
type PostView struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	Message         string             `json:"message"`
	Topics          []domain.Topic     `json:"topics"`
	Author          domain.UserRef     `json:"author"`
	Status          domain.PostStatus  `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	ExpiresAt       time.Time          `json:"expires_at"`
	TimeLeftMs      int64              `json:"time_left_ms"`
	TimeLeft        string             `json:"time_left"`
	Likes           []domain.UserRef   `json:"likes"`
	Dislikes        []domain.UserRef   `json:"dislikes"`
	Comments        []CommentView      `json:"comments"`
	EngagementScore int                `json:"engagement_score"`
}

type Interaction struct {
	User    string    `json:"user"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

type Interactions struct {
	Likes    []Interaction `json:"likes"`
	Dislikes []Interaction `json:"dislikes"`
	Comments []Interaction `json:"comments"`
}

type HistoryView struct {
	PostView
	Interactions Interactions `json:"interactions"`
}

// lookup holds the users, topics and comments referenced by a batch of
// posts, loaded with one query per collection.
type lookup struct {
	users    map[primitive.ObjectID]*domain.User
	topics   map[primitive.ObjectID]*domain.Topic
	comments map[primitive.ObjectID]*domain.Comment
}

func (lk *lookup) user(id primitive.ObjectID) domain.UserRef {
	if u, ok := lk.users[id]; ok {
		return u.Ref()
	}
	return domain.UserRef{ID: id}
}

func (lk *lookup) email(id primitive.ObjectID) string {
	if u, ok := lk.users[id]; ok {
		return u.Email
	}
	return ""
}

type idSet struct {
	seen map[primitive.ObjectID]struct{}
	ids  []primitive.ObjectID
}

func (s *idSet) add(ids ...primitive.ObjectID) {
	if s.seen == nil {
		s.seen = map[primitive.ObjectID]struct{}{}
	}
	for _, id := range ids {
		if _, ok := s.seen[id]; !ok {
			s.seen[id] = struct{}{}
			s.ids = append(s.ids, id)
		}
	}
}

func (s *Service) load(ctx context.Context, posts []domain.Post, extraUsers ...primitive.ObjectID) (*lookup, error) {
	var users, topics, comments idSet
	users.add(extraUsers...)
	for i := range posts {
		p := &posts[i]
		users.add(p.Author)
		users.add(p.Likes...)
		users.add(p.Dislikes...)
		topics.add(p.Topics...)
		comments.add(p.Comments...)
	}

	lk := &lookup{}
	var err error
	if lk.comments, err = s.store.FindCommentsByIDs(ctx, comments.ids); err != nil {
		return nil, storageErr("load comments", err)
	}
	for _, c := range lk.comments {
		users.add(c.Author)
	}
	if lk.users, err = s.store.FindUsersByIDs(ctx, users.ids); err != nil {
		return nil, storageErr("load users", err)
	}
	if lk.topics, err = s.store.FindTopicsByIDs(ctx, topics.ids); err != nil {
		return nil, storageErr("load topics", err)
	}
	return lk, nil
}

func (s *Service) decorate(ctx context.Context, posts []domain.Post, extraUsers ...primitive.ObjectID) ([]PostView, *lookup, error) {
	lk, err := s.load(ctx, posts, extraUsers...)
	if err != nil {
		return nil, nil, err
	}
	now := s.clock()
	out := make([]PostView, 0, len(posts))
	for i := range posts {
		out = append(out, lk.view(&posts[i], now))
	}
	return out, lk, nil
}

func (lk *lookup) view(p *domain.Post, now time.Time) PostView {
	left := p.TimeLeft(now)
	v := PostView{
		ID:              p.ID,
		Title:           p.Title,
		Message:         p.Message,
		Topics:          make([]domain.Topic, 0, len(p.Topics)),
		Author:          lk.user(p.Author),
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		ExpiresAt:       p.ExpiresAt,
		TimeLeftMs:      left.Milliseconds(),
		TimeLeft:        domain.TimeLeftHuman(left),
		Likes:           make([]domain.UserRef, 0, len(p.Likes)),
		Dislikes:        make([]domain.UserRef, 0, len(p.Dislikes)),
		Comments:        make([]CommentView, 0, len(p.Comments)),
		EngagementScore: p.EngagementScore(),
	}
	for _, id := range p.Topics {
		if t, ok := lk.topics[id]; ok {
			v.Topics = append(v.Topics, *t)
		} else {
			v.Topics = append(v.Topics, domain.Topic{ID: id})
		}
	}
	for _, id := range p.Likes {
		v.Likes = append(v.Likes, lk.user(id))
	}
	for _, id := range p.Dislikes {
		v.Dislikes = append(v.Dislikes, lk.user(id))
	}
	for _, id := range p.Comments {
		c, ok := lk.comments[id]
		if !ok {
			continue
		}
		v.Comments = append(v.Comments, CommentView{
			ID:        c.ID,
			Author:    lk.user(c.Author),
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	return v
}

// history expands a post's reactions and comments per user. The store
// keeps no timestamp per reaction, so likes and dislikes carry the post's
// creation time.
func (lk *lookup) history(p *domain.Post, now time.Time) HistoryView {
	h := HistoryView{
		PostView: lk.view(p, now),
		Interactions: Interactions{
			Likes:    make([]Interaction, 0, len(p.Likes)),
			Dislikes: make([]Interaction, 0, len(p.Dislikes)),
			Comments: make([]Interaction, 0, len(p.Comments)),
		},
	}
	for _, id := range p.Likes {
		h.Interactions.Likes = append(h.Interactions.Likes, Interaction{User: lk.user(id).Username, At: p.CreatedAt})
	}
	for _, id := range p.Dislikes {
		h.Interactions.Dislikes = append(h.Interactions.Dislikes, Interaction{User: lk.user(id).Username, At: p.CreatedAt})
	}
	for _, c := range h.Comments {
		h.Interactions.Comments = append(h.Interactions.Comments, Interaction{User: c.Author.Username, Message: c.Message, At: c.CreatedAt})
	}
	return h
}
