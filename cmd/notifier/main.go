package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tazhibayda/piazza-service/internal/config"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/mail"
	"github.com/tazhibayda/piazza-service/internal/notify"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	l, err := log.Init(cfg.Prod())
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	if cfg.RabbitURL == "" {
		l.Fatal("RABBIT_URL is required for the notifier")
	}
	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.NotifyQueue, cfg.NotifyBindKey)
	if err != nil {
		l.Fatal("rabbit consumer init failed", zap.Error(err))
	}
	defer cons.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("notifier up",
		zap.String("exchange", cfg.RabbitExchange),
		zap.String("queue", cfg.NotifyQueue),
		zap.String("key", cfg.NotifyBindKey),
		zap.Int("workers", cfg.NotifyConcurrency))

	h := notify.Handler(&mail.Sender{Log: l}, l)
	if err := cons.Consume(ctx, cfg.NotifyConcurrency, h); err != nil {
		l.Fatal("consumer stopped", zap.Error(err))
	}
	l.Info("notifier stopped")
}
