package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	l.WithContext(ctx).Infof("stored %d", 1)
	l.WithContext(context.Background()).Warnf("plain")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "stored 1", entries[0].Message)
		assert.Equal(t, map[string]interface{}{"request_id": "req-1", "user_id": "user-1"}, entries[0].ContextMap())
		assert.Empty(t, entries[1].ContextMap())
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}
