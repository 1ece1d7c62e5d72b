package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, HashValue("not-an-email"), MaskEmail("not-an-email"))
	assert.Len(t, HashValue("x"), 16)
}

func TestSecurityLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "portfolio-site", "test")
	meta := RequestMeta{IP: "10.0.0.1", RequestID: "req-1"}

	sl.LogContactValidationFailed(context.Background(), map[string]string{"from_email": "invalid-format"}, meta)
	sl.LogDeliveryFailed(context.Background(), "jane@example.com", errors.New("status 500"), meta)
	sl.LogCSRFViolation(context.Background(), "missing", "/contact", meta)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "contact_validation_failed", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, `{"from_email":"invalid-format"}`, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "j***@example.com", entries[1].ContextMap()["subject_value"])
	assert.NotContains(t, entries[1].ContextMap(), "user_agent")

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "HIGH", entries[2].ContextMap()["severity"])
	assert.Equal(t, "req-1", entries[2].ContextMap()["request_id"])
}

func TestDefaultLogger(t *testing.T) {
	assert.NotNil(t, DefaultLogger())

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewSecurityLogger(zap.New(core), "svc", "test"))
	t.Cleanup(func() { SetDefault(nil) })

	DefaultLogger().LogRateLimitTriggered(context.Background(), "/contact", RequestMeta{IP: "1.2.3.4"})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "1.2.3.4", logs.All()[0].ContextMap()["subject_value"])
}
