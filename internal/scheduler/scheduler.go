package scheduler

import (
	"context"
	"time"

	"github.com/noreyni/webhook-api/internal/config"
	invitationdomain "github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sweepLockKey = "scheduler:lock:invitation-sweep"
	jobTimeout   = 30 * time.Second
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	Inv     invitationdomain.Service
	Limiter *ratelimit.RequestLimiter
}

// Scheduler runs the periodic invitation sweep: pending invitations past
// their deadline are flipped to EXPIRED. Responses already handle expiry
// lazily, so the sweep only keeps listings and stats from drifting.
type Scheduler struct {
	log      *zap.Logger
	interval time.Duration
	inv      invitationdomain.Service
	locker   *ratelimit.Locker

	cancel context.CancelFunc
	done   chan struct{}
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:      p.Log.Named("scheduler"),
		interval: p.Config.SweepInterval,
		inv:      p.Inv,
		locker:   p.Limiter.Lock(),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.log.Info("invitation sweep disabled")
		return nil
	}
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(runCtx)
	s.log.Info("invitation sweep started", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	// With several instances running, only the lock holder sweeps. Without
	// Redis the sweep runs everywhere; it is idempotent, just redundant.
	if s.locker != nil {
		token, ok, err := s.locker.TryLock(ctx, sweepLockKey, s.interval)
		if err != nil {
			s.log.Warn("sweep lock unavailable", zap.Error(err))
		} else if !ok {
			return
		} else {
			defer func() {
				if err := s.locker.Release(ctx, sweepLockKey, token); err != nil {
					s.log.Warn("sweep lock release failed", zap.Error(err))
				}
			}()
		}
	}

	if _, err := s.inv.SweepExpired(ctx); err != nil {
		s.log.Error("invitation sweep failed", zap.Error(err))
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Scheduler) {
		lc.Append(fx.Hook{OnStart: s.Start, OnStop: s.Stop})
	}),
)
