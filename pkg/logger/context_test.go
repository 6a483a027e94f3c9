package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogContextAccumulatesFields(t *testing.T) {
	lc := NewLogContext()
	ctx := WithLogContext(context.Background(), lc)

	AddToContext(ctx, zap.String(FieldOperation, "get_updates"))
	AddToContext(ctx, zap.Int64(FieldOffset, 7), zap.Bool(FieldSuccess, true))

	fields := GetLogContext(ctx).Fields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != FieldOffset || fields[1].Integer != 7 {
		t.Fatalf("unexpected offset field: %+v", fields[1])
	}
}

func TestAddToContextWithoutLogContextIsNoop(t *testing.T) {
	AddToContext(context.Background(), zap.String("k", "v"))
	if GetLogContext(context.Background()) != nil {
		t.Fatal("expected no log context")
	}
}

func TestCtxAddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	ctx := WithCorrelationID(context.Background(), "unit-1")
	log.Ctx(ctx).Info("processing")
	log.Ctx(context.Background()).Info("plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldCorrelationID]; got != "unit-1" {
		t.Fatalf("expected correlation id unit-1, got %v", got)
	}
	if _, ok := entries[1].ContextMap()[FieldCorrelationID]; ok {
		t.Fatal("expected no correlation id on plain entry")
	}
}
