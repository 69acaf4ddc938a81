package board

import (
	"context"
	"fmt"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/queue"
	"go.uber.org/zap"
)

// PageSize bounds every list query.
const PageSize = 20

type Service struct {
	store    Store
	events   queue.Publisher
	exchange string
	log      *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Service)

func WithPublisher(p queue.Publisher, exchange string) Option {
	return func(s *Service) { s.events, s.exchange = p, exchange }
}

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func WithPostTTL(d time.Duration) Option { return func(s *Service) { s.ttl = d } }

// WithClock replaces time.Now; tests drive expiry with it.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		events:   queue.NewNoop(),
		exchange: "board.events",
		log:      zap.NewNop(),
		ttl:      domain.DefaultPostTTL,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) clock() time.Time { return s.now().UTC() }

// storageErr keeps domain failures as they are and classifies anything
// else coming out of the store as a StorageError.
func storageErr(op string, err error) error {
	if err == nil || domain.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

// emit publishes off the request path; delivery failures are logged only.
func (s *Service) emit(ctx context.Context, key string, event any) {
	ctx = context.WithoutCancel(ctx)
	reqID := log.RequestID(ctx)
	go func() {
		if err := s.events.Publish(ctx, s.exchange, key, event, reqID); err != nil {
			log.WithDD(ctx, s.log).Warn("event publish failed", zap.String("key", key), zap.Error(err))
		}
	}()
}
