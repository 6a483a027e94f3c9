package hooks

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/poll"
)

func TestDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := New(Funcs{}, logger.New(zap.New(core)))
	ctx := context.Background()

	cfg := h.OnBoot(ctx)
	if cfg.Offset != 0 || cfg.Limit != 0 || len(cfg.AllowedUpdates) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Fatal("expected an error log for the missing boot hook")
	}

	if err := h.OnInit(ctx, map[string]any{"offset": int64(0)}); err != nil {
		t.Fatalf("expected default init to succeed, got %v", err)
	}
	if logs.FilterMessage("poller initialised").Len() != 1 {
		t.Fatal("expected an info log from the default init hook")
	}

	res := h.OnUpdate(ctx, models.Update{UpdateID: 3})
	if res.Kind != models.ResultIgnore {
		t.Fatalf("expected ignore, got %v", res.Kind)
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Fatal("expected a warning for the missing update hook")
	}

	h.OnFailure(ctx, errors.New("unreachable"))
	if logs.FilterMessage("failed to fetch updates").Len() != 1 {
		t.Fatal("expected an error log from the default failure hook")
	}
}

func TestFuncsOverrideDefaults(t *testing.T) {
	var failed error
	h := New(Funcs{
		Boot: func(ctx context.Context) poll.Config { return poll.Config{Offset: 11, Limit: 5} },
		Init: func(ctx context.Context, state map[string]any) error { return errors.New("nope") },
		Update: func(ctx context.Context, u models.Update) models.HandlerResult {
			return models.Dispatch("sendMessage", map[string]any{"chat_id": u.UpdateID})
		},
		Failure: func(ctx context.Context, err error) { failed = err },
	}, logger.Nop())
	ctx := context.Background()

	if cfg := h.OnBoot(ctx); cfg.Offset != 11 || cfg.Limit != 5 {
		t.Fatalf("unexpected boot config: %+v", cfg)
	}
	if err := h.OnInit(ctx, nil); err == nil {
		t.Fatal("expected init error from override")
	}
	if res := h.OnUpdate(ctx, models.Update{UpdateID: 2}); res.Method != "sendMessage" {
		t.Fatalf("unexpected result: %+v", res)
	}
	boom := errors.New("boom")
	h.OnFailure(ctx, boom)
	if failed != boom {
		t.Fatalf("expected failure hook to receive error, got %v", failed)
	}
}
