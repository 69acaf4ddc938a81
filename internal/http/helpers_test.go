package http_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/piazza-service/internal/board"
	api "github.com/tazhibayda/piazza-service/internal/http"
	"github.com/tazhibayda/piazza-service/internal/repo/memstore"
	"github.com/tazhibayda/piazza-service/internal/security"
)

const testSecret = "test-secret"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	T      *testing.T
	Store  *memstore.Store
	Clock  *clock
	Router *gin.Engine
}

func newTestEnv(t *testing.T, limiter api.Limiter) *testEnv {
	t.Helper()
	security.Cost = 4

	store := memstore.New()
	clk := &clock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := board.New(store, board.WithClock(clk.Now))

	gin.SetMode(gin.TestMode)
	h := api.NewHandler(svc, testSecret, time.Hour, store, limiter, nil)
	return &testEnv{T: t, Store: store, Clock: clk, Router: api.NewRouter(h, api.RouterOptions{})}
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(api.AuthHeader, token)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) decode(w *httptest.ResponseRecorder, dst any) {
	e.T.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		e.T.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

// signup registers a user and returns its access token.
func (e *testEnv) signup(name string) string {
	e.T.Helper()
	w := e.do("POST", "/api/v1/users/register",
		`{"username":"`+name+`","email":"`+name+`@example.com","password":"secret123"}`, "")
	if w.Code != 201 {
		e.T.Fatalf("register %s: %d %s", name, w.Code, w.Body.String())
	}
	w = e.do("POST", "/api/v1/users/login", `{"email":"`+name+`@example.com","password":"secret123"}`, "")
	if w.Code != 200 {
		e.T.Fatalf("login %s: %d %s", name, w.Code, w.Body.String())
	}
	var lr struct {
		AuthToken string `json:"auth_token"`
	}
	e.decode(w, &lr)
	return lr.AuthToken
}

func (e *testEnv) topic(token, name string) string {
	e.T.Helper()
	w := e.do("POST", "/api/v1/topics", `{"name":"`+name+`"}`, token)
	if w.Code != 201 {
		e.T.Fatalf("topic %s: %d %s", name, w.Code, w.Body.String())
	}
	var t struct {
		ID string `json:"id"`
	}
	e.decode(w, &t)
	return t.ID
}

func (e *testEnv) post(token, topicID, title string) string {
	e.T.Helper()
	w := e.do("POST", "/api/v1/posts",
		`{"title":"`+title+`","message":"hello there","topics":["`+topicID+`"]}`, token)
	if w.Code != 201 {
		e.T.Fatalf("post %s: %d %s", title, w.Code, w.Body.String())
	}
	var p struct {
		ID string `json:"id"`
	}
	e.decode(w, &p)
	return p.ID
}
