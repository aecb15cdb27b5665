// Package mqtttest provides an in-memory mqtt.Client for tests.
package mqtttest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/autopeer-io/vfacts/pkg/mqtt"
)

var _ mqtt.Client = (*Client)(nil)

// Message is a publication recorded by Client.
type Message struct {
	Topic   string
	QoS     int
	Retain  bool
	Payload []byte
}

// Client records publications and delivers messages injected with Deliver to
// matching subscriptions, synchronously.
type Client struct {
	mu            sync.Mutex
	started       bool
	connected     bool
	published     []Message
	subscriptions map[string]mqtt.MessageHandler

	// PublishErr, when set, is returned by Publish.
	PublishErr error
}

func NewClient() *Client {
	return &Client{subscriptions: make(map[string]mqtt.MessageHandler)}
}

func (c *Client) Start(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started, c.connected = true, true
	return nil
}

func (c *Client) Disconnect(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
}

func (c *Client) Publish(_ context.Context, topic string, qos int, retain bool, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PublishErr != nil {
		return c.PublishErr
	}
	c.published = append(c.published, Message{Topic: topic, QoS: qos, Retain: retain, Payload: payload})
	return nil
}

func (c *Client) Subscribe(_ context.Context, topic string, _ int, handler mqtt.MessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return errors.New("client not started")
	}
	c.subscriptions[topic] = handler
	return nil
}

func (c *Client) Unsubscribe(_ context.Context, topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, topic)
	return nil
}

func (c *Client) AwaitConnection(ctx context.Context) error { return ctx.Err() }

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Subscribed lists the active topic filters.
func (c *Client) Subscribed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.subscriptions))
	for t := range c.subscriptions {
		out = append(out, t)
	}
	return out
}

// Published returns a copy of every recorded publication.
func (c *Client) Published() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.published...)
}

// Deliver hands payload to every subscription whose filter matches topic and
// reports how many handlers ran.
func (c *Client) Deliver(ctx context.Context, topic string, payload []byte) int {
	c.mu.Lock()
	var handlers []mqtt.MessageHandler
	for filter, h := range c.subscriptions {
		if Match(filter, topic) {
			handlers = append(handlers, h)
		}
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(ctx, topic, payload)
	}
	return len(handlers)
}

// Match reports whether topic matches filter. Shared subscription prefixes
// are ignored.
func Match(filter, topic string) bool {
	if strings.HasPrefix(filter, "$share/") {
		if parts := strings.SplitN(filter, "/", 3); len(parts) == 3 {
			filter = parts[2]
		}
	}
	fp, tp := strings.Split(filter, "/"), strings.Split(topic, "/")
	for i, part := range fp {
		if part == "#" {
			return true
		}
		if i >= len(tp) || (part != "+" && part != tp[i]) {
			return false
		}
	}
	return len(fp) == len(tp)
}
