package dispatch

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

// Processor handles a single update inside its own unit of work
type Processor interface {
	Process(ctx context.Context, update models.Update)
}

// Config holds configuration for the dispatcher
type Config struct {
	// MaxInFlight bounds concurrently running units; 0 means unbounded
	MaxInFlight int64
}

// Dispatcher starts one isolated goroutine per update. A panic inside a unit
// ends that unit only.
type Dispatcher struct {
	processor Processor
	logger    *logger.CanonicalLogger
	sem       *semaphore.Weighted
	wg        sync.WaitGroup
}

// New creates a dispatcher that hands updates to processor
func New(processor Processor, cfg Config, log *logger.CanonicalLogger) *Dispatcher {
	d := &Dispatcher{
		processor: processor,
		logger:    log.Component("dispatcher"),
	}
	if cfg.MaxInFlight > 0 {
		d.sem = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	return d
}

// Dispatch starts processing update and returns without waiting for it. With
// a bound configured it blocks until a slot is free, so units still start in
// the order Dispatch is called.
func (d *Dispatcher) Dispatch(ctx context.Context, update models.Update) {
	if d.sem != nil {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			d.logger.WithUpdateID(update.UpdateID).Info("dropping update, dispatcher stopping", logger.Err(err))
			return
		}
	}

	id := uuid.NewString()
	// Units outlive the poll loop that spawned them.
	unitCtx := logger.WithCorrelationID(context.WithoutCancel(ctx), id)

	d.wg.Add(1)
	go d.run(unitCtx, update)
}

func (d *Dispatcher) run(ctx context.Context, update models.Update) {
	defer d.wg.Done()
	if d.sem != nil {
		defer d.sem.Release(1)
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Ctx(ctx).WithUpdateID(update.UpdateID).Error("update processing crashed",
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())),
			)
		}
	}()

	d.processor.Process(ctx, update)
}

// Wait blocks until every started unit has finished or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
