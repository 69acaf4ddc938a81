package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	docs "github.com/tazhibayda/piazza-service/docs"
	"github.com/tazhibayda/piazza-service/internal/board"
	"github.com/tazhibayda/piazza-service/internal/config"
	httpapi "github.com/tazhibayda/piazza-service/internal/http"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/metrics"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"github.com/tazhibayda/piazza-service/internal/repo"
	"github.com/tazhibayda/piazza-service/internal/repo/memstore"
	"github.com/tazhibayda/piazza-service/internal/sweep"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const serviceName = "piazza-service"

type store interface {
	board.Store
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func openStore(ctx context.Context, cfg config.Config, l *zap.Logger) (store, error) {
	switch cfg.StoreDriver {
	case "memory":
		l.Warn("using in-memory store; data is lost on restart")
		return memstore.New(), nil
	case "mongo":
		s, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// @title Piazza API
// @version 0.1.0
// @description Topic board with expiring posts, comments and reactions.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey AuthToken
// @in header
// @name auth-token
func main() {
	cfg := config.Load()

	l, err := log.Init(cfg.Prod())
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	if cfg.Prod() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.MustRegister()

	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(serviceName), tracer.WithEnv(cfg.Env))
		defer tracer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := openStore(ctx, cfg, l)
	cancel()
	if err != nil {
		l.Fatal("store init failed", zap.Error(err))
	}
	defer st.Close(context.Background())

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		if pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
			l.Fatal("rabbit init failed", zap.Error(err))
		}
	}
	defer pub.Close()

	var limiter httpapi.Limiter = httpapi.NewLocalLimiter(cfg.RateLimitPerMin)
	if cfg.RedisAddr != "" {
		rds := repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
		limiter = &httpapi.RedisLimiter{R: rds, Prefix: "rl:login:", Limit: cfg.RateLimitPerMin, Window: time.Minute}
	}

	svc := board.New(st,
		board.WithPublisher(pub, cfg.RabbitExchange),
		board.WithLogger(l),
		board.WithPostTTL(cfg.PostTTL),
	)

	sw, err := sweep.New(svc, cfg.SweepCron, cfg.SweepTimeout, l)
	if err != nil {
		l.Fatal("sweep init failed", zap.Error(err))
	}
	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sw.Start(root)
	defer sw.Stop()

	docs.SwaggerInfo.BasePath = "/"
	h := httpapi.NewHandler(svc, cfg.TokenSecret, cfg.TokenTTL, st, limiter, l)
	r := httpapi.NewRouter(h, httpapi.RouterOptions{Trace: cfg.DDEnabled, ServiceName: serviceName})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()
	l.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))

	select {
	case <-root.Done():
		l.Info("shutting down")
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			l.Error("server error", zap.Error(err))
		}
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		l.Error("graceful shutdown failed", zap.Error(err))
	}
}
