package interpreter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

type staticHandler struct {
	result models.HandlerResult
}

func (h staticHandler) OnUpdate(ctx context.Context, update models.Update) models.HandlerResult {
	return h.result
}

type call struct {
	method string
	params map[string]any
}

type mockCaller struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (m *mockCaller) CallMethod(ctx context.Context, method string, params map[string]any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call{method: method, params: params})
	return map[string]any{"message_id": 1}, m.err
}

func newObserved() (*logger.CanonicalLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.New(zap.New(core)), logs
}

func TestProcess_IgnoreMakesNoCall(t *testing.T) {
	caller := &mockCaller{}
	log, logs := newObserved()
	New(staticHandler{result: models.Ignore()}, caller, log).Process(context.Background(), models.Update{UpdateID: 1})

	if len(caller.calls) != 0 {
		t.Fatalf("expected no outbound call, got %d", len(caller.calls))
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 0 {
		t.Fatal("expected no warning for ignore")
	}
}

func TestProcess_DispatchCallsOnce(t *testing.T) {
	caller := &mockCaller{}
	params := map[string]any{"chat_id": int64(42), "text": "hello"}
	New(staticHandler{result: models.Dispatch("sendMessage", params)}, caller, logger.Nop()).
		Process(context.Background(), models.Update{UpdateID: 1})

	if len(caller.calls) != 1 {
		t.Fatalf("expected exactly one call, got %d", len(caller.calls))
	}
	c := caller.calls[0]
	if c.method != "sendMessage" || c.params["text"] != "hello" || c.params["chat_id"] != int64(42) {
		t.Fatalf("unexpected call: %+v", c)
	}
}

func TestProcess_CallErrorIsLoggedNotRetried(t *testing.T) {
	caller := &mockCaller{err: errors.New("chat not found")}
	log, logs := newObserved()
	New(staticHandler{result: models.Dispatch("sendMessage", map[string]any{"chat_id": 1})}, caller, log).
		Process(context.Background(), models.Update{UpdateID: 9})

	if len(caller.calls) != 1 {
		t.Fatalf("expected a single attempt, got %d", len(caller.calls))
	}
	entries := logs.FilterMessage("failed to call method").All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[logger.FieldMethod] != "sendMessage" {
		t.Fatalf("expected method in log, got %v", fields)
	}
	if _, ok := fields[logger.FieldParams]; !ok {
		t.Fatalf("expected params in log, got %v", fields)
	}
}

func TestProcess_UnrecognizedResultWarnsOnce(t *testing.T) {
	caller := &mockCaller{}
	log, logs := newObserved()
	New(staticHandler{result: models.HandlerResult{Kind: models.ResultKind(42)}}, caller, log).
		Process(context.Background(), models.Update{UpdateID: 1})

	if len(caller.calls) != 0 {
		t.Fatalf("expected no outbound call, got %d", len(caller.calls))
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Fatalf("expected exactly one warning, got %d", logs.FilterLevelExact(zapcore.WarnLevel).Len())
	}
}

func TestProcess_DispatchWithoutMethodIsUnrecognized(t *testing.T) {
	caller := &mockCaller{}
	log, logs := newObserved()
	New(staticHandler{result: models.HandlerResult{Kind: models.ResultDispatch}}, caller, log).
		Process(context.Background(), models.Update{UpdateID: 1})

	if len(caller.calls) != 0 {
		t.Fatal("expected no call for an empty method")
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Fatal("expected one warning")
	}
}
