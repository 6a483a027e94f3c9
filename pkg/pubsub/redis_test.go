package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

func TestNewRedisPublisher_UnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Port 1 on loopback is never a Redis server.
	pub, err := NewRedisPublisher(ctx, RedisConfig{Host: "127.0.0.1", Port: 1}, logger.Nop())
	if err == nil {
		_ = pub.Close()
		t.Fatal("expected connection error")
	}
}
