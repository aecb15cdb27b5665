package mqtt

import (
	"context"
)

// MessageHandler processes one received message. Handlers run on their own
// goroutine; ctx expires after ClientConfig.HandlerTimeout.
type MessageHandler func(ctx context.Context, topic string, payload []byte)

// Client is the MQTT surface used by vfacts. It hides the paho details.
type Client interface {
	// Start initiates the connection to the broker. It returns immediately;
	// use AwaitConnection to wait.
	Start(ctx context.Context) error

	// Disconnect cleanly closes the connection.
	Disconnect(ctx context.Context)

	Publish(ctx context.Context, topic string, qos int, retain bool, payload []byte) error

	// Subscribe registers handler for a topic filter. Subscriptions are
	// restored after a reconnect.
	Subscribe(ctx context.Context, topic string, qos int, handler MessageHandler) error

	Unsubscribe(ctx context.Context, topic string) error

	// AwaitConnection blocks until the client is connected to the broker.
	AwaitConnection(ctx context.Context) error

	IsConnected() bool
}
