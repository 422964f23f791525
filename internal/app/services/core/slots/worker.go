package slots

import (
	"context"
	"flexera-service/internal/app/config"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically sweeps stale pending reservations back to open.
type Worker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	locker      contracts.LockerService
	slotUsecase contracts.SlotUsecase
	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, slotUsecase contracts.SlotUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, slotUsecase: slotUsecase}
}

// Start begins the periodic sweep loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Booking.SweepCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("slots.worker: failed to schedule with provided cron spec; falling back to @every 1m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the cron loop and any in-flight sweep.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop() // wait for running jobs to finish
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	// Leader lock keeps multiple instances from sweeping concurrently. The
	// sweep itself is conditional per slot, so this is about wasted work, not
	// correctness.
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeySweepLeaderLock, ttl)
	if err != nil {
		w.log.Warn("slots.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeySweepLeaderLock, token)

	if _, err := w.slotUsecase.ExpireStalePending(ctx); err != nil {
		w.log.Error("slots.worker: sweep failed", zap.Error(err))
	}
}
