package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

func TestUnaryTimeoutInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	var remaining time.Duration
	handler := func(ctx context.Context, _ any) (any, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		remaining = time.Until(deadline)
		return nil, nil
	}

	_, err := UnaryTimeoutInterceptor(time.Second)(context.Background(), nil, info, handler)
	assert.NoError(t, err)
	assert.LessOrEqual(t, remaining, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	_, err = UnaryTimeoutInterceptor(time.Second)(ctx, nil, info, handler)
	assert.NoError(t, err)
	assert.Greater(t, remaining, time.Minute, "an existing deadline is kept")

	_, err = UnaryTimeoutInterceptor(0)(context.Background(), nil, info, handler)
	assert.NoError(t, err)
	assert.Greater(t, remaining, time.Second)
}
