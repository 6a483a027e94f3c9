package hooks

import (
	"context"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/poll"
)

// Hooks is the lifecycle surface an embedder implements
type Hooks interface {
	// OnBoot supplies the starting config, once, before the poller starts
	OnBoot(ctx context.Context) poll.Config
	// OnInit is called when the poller initialises, with the config as a map
	OnInit(ctx context.Context, state map[string]any) error
	// OnUpdate interprets one update
	OnUpdate(ctx context.Context, update models.Update) models.HandlerResult
	// OnFailure is told about each failed fetch. It must not panic.
	OnFailure(ctx context.Context, err error)
}

// Funcs builds Hooks from plain functions. Any nil field falls back to a
// default that logs and keeps the service running.
type Funcs struct {
	Boot    func(ctx context.Context) poll.Config
	Init    func(ctx context.Context, state map[string]any) error
	Update  func(ctx context.Context, update models.Update) models.HandlerResult
	Failure func(ctx context.Context, err error)
}

type funcHooks struct {
	fn     Funcs
	logger *logger.CanonicalLogger
}

// New returns Hooks backed by fn
func New(fn Funcs, log *logger.CanonicalLogger) Hooks {
	return &funcHooks{fn: fn, logger: log.Component("hooks")}
}

func (h *funcHooks) OnBoot(ctx context.Context) poll.Config {
	if h.fn.Boot != nil {
		return h.fn.Boot(ctx)
	}
	h.logger.Error("no boot hook implemented, starting from an empty config")
	return poll.Config{}
}

func (h *funcHooks) OnInit(ctx context.Context, state map[string]any) error {
	if h.fn.Init != nil {
		return h.fn.Init(ctx, state)
	}
	h.logger.Info("poller initialised", logger.Any("state", state))
	return nil
}

func (h *funcHooks) OnUpdate(ctx context.Context, update models.Update) models.HandlerResult {
	if h.fn.Update != nil {
		return h.fn.Update(ctx, update)
	}
	h.logger.Ctx(ctx).WithUpdateID(update.UpdateID).Warn("no update hook implemented, ignoring update")
	return models.Ignore()
}

func (h *funcHooks) OnFailure(ctx context.Context, err error) {
	if h.fn.Failure != nil {
		h.fn.Failure(ctx, err)
		return
	}
	h.logger.WithError(err).Error("failed to fetch updates")
}
