package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

type RouterOptions struct {
	// Trace adds Datadog spans per request; the tracer itself is started in main.
	Trace       bool
	ServiceName string
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Trace {
		r.Use(gintrace.Middleware(opts.ServiceName))
	}
	r.Use(RequestID(), Metrics(), AccessLog(h.Log))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", RateLimit(h.Limiter, h.Log), h.Login)
		users.GET("/me", AuthJWT(h.TokenSecret), h.Me)
	}

	topics := api.Group("/topics", AuthJWT(h.TokenSecret))
	{
		topics.GET("", h.ListTopics)
		topics.POST("", h.CreateTopic)
		topics.GET("/:topic/posts", h.TopicPosts)
		topics.GET("/:topic/most-active", h.MostActive)
		topics.GET("/:topic/history", h.History)
	}

	posts := api.Group("/posts", AuthJWT(h.TokenSecret))
	{
		posts.GET("", h.ListPosts)
		posts.POST("", h.CreatePost)
		posts.GET("/:postId", h.GetPost)
		posts.POST("/:postId/comment", h.Comment)
		posts.POST("/:postId/like", h.Like)
		posts.POST("/:postId/dislike", h.Dislike)
	}
	return r
}
