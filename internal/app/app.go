package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Alwanly/service-feed-poller/internal/botapi"
	"github.com/Alwanly/service-feed-poller/internal/hooks"
	"github.com/Alwanly/service-feed-poller/internal/interpreter"
	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/dispatch"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/poll"
	"github.com/Alwanly/service-feed-poller/pkg/retry"
)

// FeedClient is the remote side: fetches for the poller, calls for the interpreter
type FeedClient interface {
	poll.Fetcher
	interpreter.MethodCaller
}

// identityProber is implemented by clients that can check their credentials
type identityProber interface {
	GetMe(ctx context.Context) (*models.User, error)
}

type Options struct {
	MaxInFlight   int64
	ShutdownGrace time.Duration
	// BootRetry drives the identity probe when the client supports one
	BootRetry retry.Config
}

// Run boots the hooks and polls until ctx is cancelled. It returns nil on a
// normal shutdown and an error only if the poller could not initialise.
func Run(ctx context.Context, h hooks.Hooks, feed FeedClient, opts Options, log *logger.CanonicalLogger) error {
	if p, ok := feed.(identityProber); ok {
		probe(ctx, p, opts.BootRetry, log)
	}

	cfg := h.OnBoot(ctx)

	interp := interpreter.New(h, feed, log)
	d := dispatch.New(interp, dispatch.Config{MaxInFlight: opts.MaxInFlight}, log)
	p := poll.NewPoller(cfg, feed, d, h, log)

	err := p.Run(ctx)

	drainCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownGrace)
	defer cancel()
	if werr := d.Wait(drainCtx); werr != nil {
		log.Info("shutdown grace elapsed, dropping in-flight updates", logger.Duration("grace", opts.ShutdownGrace))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// probe checks the bot identity before polling starts. Failure is logged and
// the service starts anyway.
func probe(ctx context.Context, p identityProber, cfg retry.Config, log *logger.CanonicalLogger) {
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Info("identity probe attempt failed",
			logger.Int("attempt", attempt),
			logger.Int("max_retries", cfg.MaxRetries),
			logger.Duration("next_attempt_in", wait),
			logger.String("error", err.Error()),
		)
	}

	var me *models.User
	err := retry.WithExponentialBackoff(ctx, cfg, func(ctx context.Context) error {
		u, err := p.GetMe(ctx)
		if err != nil {
			var apiErr *botapi.APIError
			if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusNotFound) {
				return retry.Permanent(err)
			}
			return err
		}
		me = u
		return nil
	})
	if err != nil {
		log.WithError(err).Error("identity probe failed, starting anyway")
		return
	}

	log.Info("bot identity confirmed",
		logger.Int64("bot_id", me.ID),
		logger.String("username", me.Username),
	)
}
