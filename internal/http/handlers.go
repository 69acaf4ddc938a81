package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/piazza-service/internal/board"
	"github.com/tazhibayda/piazza-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthHeader carries the access token on requests and on the login response.
const AuthHeader = "auth-token"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Svc         *board.Service
	TokenSecret string
	TokenTTL    time.Duration
	Store       Pinger
	Limiter     Limiter
	Log         *zap.Logger
}

func NewHandler(svc *board.Service, secret string, ttl time.Duration, store Pinger, limiter Limiter, l *zap.Logger) *Handler {
	if l == nil {
		l = zap.NewNop()
	}
	return &Handler{Svc: svc, TokenSecret: secret, TokenTTL: ttl, Store: store, Limiter: limiter, Log: l}
}

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, fmt.Errorf("%w: invalid json", domain.ErrValidation))
		return false
	}
	return true
}

func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(uidKey))
	return id, err == nil
}

// postID parses :postId; a malformed id can never name a post.
func postID(c *gin.Context) (primitive.ObjectID, error) {
	raw := c.Param("postId")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return id, fmt.Errorf("%w: post %s", domain.ErrNotFound, raw)
	}
	return id, nil
}

// Healthz godoc
// @Summary Liveness and store reachability
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "store unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Register godoc
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body board.RegisterInput true "register"
// @Success 201 {object} domain.User
// @Failure 400 {object} errResp
// @Failure 409 {object} errResp
// @Router /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in board.RegisterInput
	if !h.bind(c, &in) {
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginResp struct {
	AuthToken string `json:"auth_token"`
}

// Login godoc
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param payload body board.LoginInput true "login"
// @Success 200 {object} loginResp
// @Failure 400 {object} errResp
// @Failure 401 {object} errResp
// @Failure 429 {object} errResp
// @Router /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in board.LoginInput
	if !h.bind(c, &in) {
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	tok, err := board.IssueToken(h.TokenSecret, h.TokenTTL, u)
	if err != nil {
		h.fail(c, fmt.Errorf("sign token: %w", err))
		return
	}
	c.Header(AuthHeader, tok)
	c.JSON(http.StatusOK, loginResp{AuthToken: tok})
}

// Me godoc
// @Summary Current user
// @Tags users
// @Security AuthToken
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} errResp
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.Svc.Identify(c.Request.Context(), c.GetString(uidKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListTopics godoc
// @Summary List topics
// @Tags topics
// @Security AuthToken
// @Produce json
// @Success 200 {array} domain.Topic
// @Router /api/v1/topics [get]
func (h *Handler) ListTopics(c *gin.Context) {
	ts, err := h.Svc.ListTopics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

// CreateTopic godoc
// @Summary Create topic
// @Tags topics
// @Security AuthToken
// @Accept json
// @Produce json
// @Param payload body board.TopicInput true "topic"
// @Success 201 {object} domain.Topic
// @Failure 400 {object} errResp
// @Failure 409 {object} errResp
// @Router /api/v1/topics [post]
func (h *Handler) CreateTopic(c *gin.Context) {
	var in board.TopicInput
	if !h.bind(c, &in) {
		return
	}
	t, err := h.Svc.CreateTopic(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// TopicPosts godoc
// @Summary Posts in a topic
// @Tags topics
// @Security AuthToken
// @Produce json
// @Param topic path string true "topic id or name"
// @Param status query string false "live or expired"
// @Success 200 {array} board.PostView
// @Failure 404 {object} errResp
// @Router /api/v1/topics/{topic}/posts [get]
func (h *Handler) TopicPosts(c *gin.Context) {
	h.listPosts(c, board.ListQuery{Topic: c.Param("topic"), Status: c.Query("status")})
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Security AuthToken
// @Produce json
// @Param topic query string false "topic id or name"
// @Param status query string false "live or expired"
// @Success 200 {array} board.PostView
// @Failure 400 {object} errResp
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	h.listPosts(c, board.ListQuery{Topic: c.Query("topic"), Status: c.Query("status")})
}

func (h *Handler) listPosts(c *gin.Context, q board.ListQuery) {
	posts, err := h.Svc.ListPosts(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// MostActive godoc
// @Summary Most engaged post of a topic
// @Tags topics
// @Security AuthToken
// @Produce json
// @Param topic path string true "topic id or name"
// @Success 200 {object} board.PostView
// @Failure 404 {object} errResp
// @Router /api/v1/topics/{topic}/most-active [get]
func (h *Handler) MostActive(c *gin.Context) {
	p, err := h.Svc.MostActive(c.Request.Context(), c.Param("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// History godoc
// @Summary Expired posts of a topic with their interactions
// @Tags topics
// @Security AuthToken
// @Produce json
// @Param topic path string true "topic id or name"
// @Success 200 {array} board.HistoryView
// @Failure 404 {object} errResp
// @Router /api/v1/topics/{topic}/history [get]
func (h *Handler) History(c *gin.Context) {
	hs, err := h.Svc.History(c.Request.Context(), c.Param("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hs)
}

// CreatePost godoc
// @Summary Create post
// @Tags posts
// @Security AuthToken
// @Accept json
// @Produce json
// @Param payload body board.PostInput true "post"
// @Success 201 {object} board.PostView
// @Failure 400 {object} errResp
// @Failure 404 {object} errResp
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		h.fail(c, fmt.Errorf("%w: malformed subject", domain.ErrAuthRejected))
		return
	}
	var in board.PostInput
	if !h.bind(c, &in) {
		return
	}
	p, err := h.Svc.CreatePost(c.Request.Context(), uid, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPost godoc
// @Summary Get post
// @Tags posts
// @Security AuthToken
// @Produce json
// @Param postId path string true "post id"
// @Success 200 {object} board.PostView
// @Failure 404 {object} errResp
// @Router /api/v1/posts/{postId} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.Svc.GetPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Comment godoc
// @Summary Comment on a live post
// @Tags posts
// @Security AuthToken
// @Accept json
// @Produce json
// @Param postId path string true "post id"
// @Param payload body board.CommentInput true "comment"
// @Success 200 {object} board.PostView
// @Failure 400 {object} errResp
// @Failure 403 {object} errResp
// @Failure 404 {object} errResp
// @Router /api/v1/posts/{postId}/comment [post]
func (h *Handler) Comment(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	uid, ok := currentUser(c)
	if !ok {
		h.fail(c, fmt.Errorf("%w: malformed subject", domain.ErrAuthRejected))
		return
	}
	var in board.CommentInput
	if !h.bind(c, &in) {
		return
	}
	p, err := h.Svc.AddComment(c.Request.Context(), id, uid, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Like godoc
// @Summary Toggle like on a live post
// @Tags posts
// @Security AuthToken
// @Produce json
// @Param postId path string true "post id"
// @Success 200 {object} board.PostView
// @Failure 403 {object} errResp
// @Failure 404 {object} errResp
// @Router /api/v1/posts/{postId}/like [post]
func (h *Handler) Like(c *gin.Context) {
	h.react(c, h.Svc.Like)
}

// Dislike godoc
// @Summary Toggle dislike on a live post
// @Tags posts
// @Security AuthToken
// @Produce json
// @Param postId path string true "post id"
// @Success 200 {object} board.PostView
// @Failure 403 {object} errResp
// @Failure 404 {object} errResp
// @Router /api/v1/posts/{postId}/dislike [post]
func (h *Handler) Dislike(c *gin.Context) {
	h.react(c, h.Svc.Dislike)
}

func (h *Handler) react(c *gin.Context, do func(ctx context.Context, postID, uid primitive.ObjectID) (*board.PostView, error)) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	uid, ok := currentUser(c)
	if !ok {
		h.fail(c, fmt.Errorf("%w: malformed subject", domain.ErrAuthRejected))
		return
	}
	p, err := do(c.Request.Context(), id, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
