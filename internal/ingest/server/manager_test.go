package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	m := &Manager{}

	stopped := make(chan struct{})
	m.Add(ServerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}))
	m.Add(ServerFunc(func(context.Context) error { return boom }))

	assert.ErrorIs(t, m.Start(context.Background()), boom)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("sibling server was not stopped")
	}
}

func TestManagerCleanShutdown(t *testing.T) {
	m := &Manager{}
	for range 3 {
		m.Add(ServerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
