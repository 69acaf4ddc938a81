// Package sweep runs the bulk expiry reconcile on a cron schedule.
package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"github.com/tazhibayda/piazza-service/internal/metrics"
	"go.uber.org/zap"
)

// DefaultCron fires once a minute.
const DefaultCron = "* * * * *"

type Reconciler interface {
	ReconcileAllExpired(ctx context.Context) (int64, error)
}

// Sweeper owns the background sweep goroutine: Start launches it, Stop
// cancels it and waits for an in-flight run to return.
type Sweeper struct {
	r       Reconciler
	cron    string
	timeout time.Duration
	log     *zap.Logger
	next    func(now time.Time) (time.Time, error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(r Reconciler, cronExpr string, timeout time.Duration, log *zap.Logger) (*Sweeper, error) {
	if cronExpr == "" {
		cronExpr = DefaultCron
	}
	if !gronx.IsValid(cronExpr) {
		return nil, fmt.Errorf("invalid sweep cron expression: %q", cronExpr)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		r:       r,
		cron:    cronExpr,
		timeout: timeout,
		log:     log,
		next: func(now time.Time) (time.Time, error) {
			return gronx.NextTickAfter(cronExpr, now, false)
		},
	}, nil
}

// Start launches the scheduler. Calling Start on a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	s.log.Info("sweep scheduler started", zap.String("cron", s.cron))
}

func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info("sweep scheduler stopped")
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		next, err := s.next(time.Now().UTC())
		if err != nil {
			s.log.Error("sweep next tick failed", zap.String("cron", s.cron), zap.Error(err))
			next = time.Now().Add(30 * time.Second)
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		// runs back to back never overlap: the next tick is computed after this one returns
		s.RunOnce(ctx)
	}
}

// RunOnce performs one sweep. Failures are logged and counted, never
// returned: the next tick is the retry.
func (s *Sweeper) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.r.ReconcileAllExpired(ctx)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("error").Inc()
		s.log.Error("sweep failed", zap.Error(err))
		return
	}
	metrics.SweepRuns.WithLabelValues("ok").Inc()
	s.log.Debug("sweep done", zap.Int64("expired", n), zap.Duration("took", time.Since(start)))
}
