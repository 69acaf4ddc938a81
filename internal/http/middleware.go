package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/metrics"
	"github.com/tazhibayda/piazza-service/internal/security"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	uidKey          = "uid"
)

// RequestID reuses an incoming X-Request-ID or mints one, and threads it
// through the request context for logging and event publishing.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func AccessLog(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithDD(c.Request.Context(), base).Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", route(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()

		r := route(c)
		metrics.ReqDuration.WithLabelValues(r, c.Request.Method).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(r, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// route is the matched pattern, so label cardinality stays bounded.
func route(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

func bearer(c *gin.Context) string {
	if tok := strings.TrimSpace(c.GetHeader(AuthHeader)); tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > len("Bearer ") && strings.EqualFold(h[:len("Bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

// AuthJWT admits requests carrying a valid access token in the auth-token
// header or as a Bearer token, and stores the subject under "uid".
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearer(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errResp{Error: "access denied"})
			return
		}
		claims, err := security.ParseAccess(secret, tok)
		if err != nil || claims.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errResp{Error: "invalid token"})
			return
		}
		c.Set(uidKey, claims.UID)
		c.Next()
	}
}
