package poll

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

// poller implements the Poller interface
type poller struct {
	feed       Fetcher
	dispatcher Dispatcher
	hooks      Hooks
	logger     *logger.CanonicalLogger
	// state is only touched by the goroutine running loop
	state Config
}

// NewPoller creates a new Poller instance starting from cfg
func NewPoller(cfg Config, feed Fetcher, dispatcher Dispatcher, hooks Hooks, log *logger.CanonicalLogger) Poller {
	return &poller{
		feed:       feed,
		dispatcher: dispatcher,
		hooks:      hooks,
		logger:     log.Component("poller"),
		state:      cfg.Normalize(),
	}
}

// Run initialises the poller and polls until ctx is cancelled
func (p *poller) Run(ctx context.Context) error {
	if err := p.init(ctx); err != nil {
		return fmt.Errorf("poller init failed: %w", err)
	}

	p.logger.Info("started polling",
		logger.Int64(logger.FieldOffset, p.state.Offset),
		logger.Int("limit", p.state.Limit),
		logger.Int("timeout_seconds", p.state.Timeout),
		logger.Duration("interval", p.state.IntervalDuration()),
		logger.Strings(logger.FieldAllowedUpdates, p.state.AllowedUpdates),
	)

	g, gCtx := errgroup.WithContext(ctx)
	if n, ok := p.feed.(DisconnectNotifier); ok {
		g.Go(func() error {
			p.watchDisconnects(gCtx, n.Disconnects())
			return nil
		})
	}
	g.Go(func() error {
		return p.loop(gCtx)
	})
	return g.Wait()
}

func (p *poller) init(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init hook panicked: %v", r)
		}
	}()
	return p.hooks.OnInit(ctx, p.state.AsMap())
}

// loop performs the polling rounds
func (p *poller) loop(ctx context.Context) error {
	for {
		p.poll(ctx)
		if err := sleep(ctx, p.state.IntervalDuration()); err != nil {
			p.logger.Info("stopping poller", logger.Int64(logger.FieldOffset, p.state.Offset))
			return err
		}
	}
}

// poll executes a single round: fetch, dispatch in order, advance the cursor
func (p *poller) poll(ctx context.Context) {
	req := FetchRequest{
		Offset:         p.state.Offset,
		Limit:          p.state.Limit,
		Timeout:        p.state.Timeout,
		AllowedUpdates: p.state.AllowedUpdates,
	}

	updates, err := p.feed.GetUpdates(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Debug("fetch failed", logger.Int64(logger.FieldOffset, req.Offset), logger.Err(err))
		p.fail(ctx, err)
		return
	}

	if len(updates) == 0 {
		p.logger.Debug("no new updates", logger.Int64(logger.FieldOffset, req.Offset))
		return
	}

	for _, u := range updates {
		p.dispatcher.Dispatch(ctx, u)
	}

	// The feed returns updates in ascending update_id order, so the last one
	// is the highest.
	next := updates[len(updates)-1].UpdateID + 1
	if next < p.state.Offset {
		p.logger.Warn("feed returned a batch whose last update is behind the cursor",
			logger.Int64(logger.FieldOffset, p.state.Offset),
			logger.Int64(logger.FieldNextOffset, next),
		)
	}
	p.state.Offset = next

	p.logger.Debug("dispatched updates",
		logger.Int(logger.FieldBatchSize, len(updates)),
		logger.Int64(logger.FieldNextOffset, next),
	)
}

func (p *poller) fail(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("failure hook panicked", logger.Any("panic", r))
		}
	}()
	p.hooks.OnFailure(ctx, err)
}

func (p *poller) watchDisconnects(ctx context.Context, ch <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-ch:
			if !ok {
				return
			}
			p.logger.Warn("feed transport disconnected", logger.Err(err))
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
