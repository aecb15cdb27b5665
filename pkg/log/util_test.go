package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToFields(t *testing.T) {
	now := time.Now()
	err := errors.New("boom")

	tests := []struct {
		name  string
		input []any
		keys  []string
	}{
		{"empty input", []any{}, nil},
		{"string-int-bool", []any{"a", "x", "b", 123, "c", true}, []string{"a", "b", "c"}},
		{"time type", []any{"t", now}, []string{"t"}},
		{"bytes", []any{"data", []byte("xyz")}, []string{"data"}},
		{"error only", []any{err}, []string{"error"}},
		{"mixed field types", []any{"msg", "ok", zap.String("x", "y"), "num", 42}, []string{"msg", "x", "num"}},
		{"odd number of args", []any{"key1", "val1", "key2"}, []string{"key1", "arg#2"}},
		{"non-string key", []any{123, "value"}, []string{"invalid_key_1"}},
		{"nil values", []any{"a", nil, "b", (*int)(nil)}, []string{"a", "b"}},
		{"strings", []any{"codes", []string{"MDLS", "BT85"}}, []string{"codes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.input...)
			keys := make([]string, 0, len(fields))
			for _, f := range fields {
				keys = append(keys, f.Key)
			}
			if tt.keys == nil {
				assert.Empty(t, keys)
				return
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestSetLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(level)
	l := NewFromCore(core, level)

	l.Debug("hidden")
	l.Logr().V(1).Info("hidden too")
	require.NoError(t, l.SetLevel("debug"))
	l.WithName("decoder").Debug("shown", "token", "X0")
	l.Logr().V(1).Info("shown too")

	assert.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "shown", entry.Message)
	assert.Equal(t, "decoder", entry.LoggerName)
	assert.Equal(t, "X0", entry.ContextMap()["token"])

	assert.Error(t, l.SetLevel("loud"))
}

func TestOptionsValidate(t *testing.T) {
	o := NewOptions()
	assert.Empty(t, o.Validate())

	o.Level = "loud"
	o.Format = "xml"
	assert.Len(t, o.Validate(), 2)
}
