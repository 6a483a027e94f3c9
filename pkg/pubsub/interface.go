package pubsub

import "context"

// Publisher defines the interface for publishing messages
type Publisher interface {
	// Publish publishes a message to a channel
	Publish(ctx context.Context, channel string, message []byte) error
	Close() error
}
