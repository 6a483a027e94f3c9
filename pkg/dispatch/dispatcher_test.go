package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

type processorFunc func(ctx context.Context, update models.Update)

func (f processorFunc) Process(ctx context.Context, update models.Update) {
	f(ctx, update)
}

func waitFor(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Wait(ctx); err != nil {
		t.Fatalf("units did not finish: %v", err)
	}
}

func TestDispatch_CrashingUnitDoesNotAffectOthers(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	var mu sync.Mutex
	var processed []int64

	d := New(processorFunc(func(ctx context.Context, u models.Update) {
		if u.UpdateID%2 == 0 {
			panic("handler exploded")
		}
		mu.Lock()
		processed = append(processed, u.UpdateID)
		mu.Unlock()
	}), Config{}, logger.New(zap.New(core)))

	for id := int64(1); id <= 6; id++ {
		d.Dispatch(context.Background(), models.Update{UpdateID: id})
	}
	waitFor(t, d)

	if len(processed) != 3 {
		t.Fatalf("expected the three odd updates to be processed, got %v", processed)
	}
	if got := logs.FilterMessage("update processing crashed").Len(); got != 3 {
		t.Fatalf("expected 3 crash logs, got %d", got)
	}
}

func TestDispatch_DoesNotWaitForProcessing(t *testing.T) {
	release := make(chan struct{})
	d := New(processorFunc(func(ctx context.Context, u models.Update) {
		<-release
	}), Config{}, logger.Nop())

	returned := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), models.Update{UpdateID: 1})
		d.Dispatch(context.Background(), models.Update{UpdateID: 2})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on processing")
	}
	close(release)
	waitFor(t, d)
}

func TestDispatch_UnitsSurvivePollerCancellation(t *testing.T) {
	var sawCancel atomic.Bool
	var correlation atomic.Value
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	d := New(processorFunc(func(uctx context.Context, u models.Update) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		sawCancel.Store(uctx.Err() != nil)
		correlation.Store(logger.GetCorrelationID(uctx))
	}), Config{}, logger.Nop())

	d.Dispatch(ctx, models.Update{UpdateID: 1})
	<-started
	cancel()
	waitFor(t, d)

	if sawCancel.Load() {
		t.Fatal("unit context was cancelled with the poller")
	}
	if id, _ := correlation.Load().(string); id == "" {
		t.Fatal("expected a correlation id on the unit context")
	}
}

func TestDispatch_BoundedKeepsStartOrder(t *testing.T) {
	var mu sync.Mutex
	var started []int64
	var running, peak atomic.Int64

	d := New(processorFunc(func(ctx context.Context, u models.Update) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		mu.Lock()
		started = append(started, u.UpdateID)
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
	}), Config{MaxInFlight: 1}, logger.Nop())

	for id := int64(1); id <= 5; id++ {
		d.Dispatch(context.Background(), models.Update{UpdateID: id})
	}
	waitFor(t, d)

	if peak.Load() != 1 {
		t.Fatalf("expected at most one unit in flight, saw %d", peak.Load())
	}
	for i, id := range started {
		if id != int64(i+1) {
			t.Fatalf("expected start order 1..5, got %v", started)
		}
	}
}

func TestDispatch_BoundedDropsWhenContextDone(t *testing.T) {
	block := make(chan struct{})
	var calls atomic.Int64
	d := New(processorFunc(func(ctx context.Context, u models.Update) {
		calls.Add(1)
		<-block
	}), Config{MaxInFlight: 1}, logger.Nop())

	d.Dispatch(context.Background(), models.Update{UpdateID: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, models.Update{UpdateID: 2})

	close(block)
	waitFor(t, d)
	if calls.Load() != 1 {
		t.Fatalf("expected only the first update processed, got %d", calls.Load())
	}
}

func TestWait_TimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	d := New(processorFunc(func(ctx context.Context, u models.Update) { <-block }), Config{}, logger.Nop())
	d.Dispatch(context.Background(), models.Update{UpdateID: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := d.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
