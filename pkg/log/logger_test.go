package log

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewForTest(t *testing.T) {
	logger, entries := NewForTest()
	assert.Equal(t, 0, entries.Len())
	logger.Info("msg 1")
	assert.Equal(t, 1, entries.Len())
	logger.Infof("msg %d", 2)
	assert.Equal(t, 2, entries.Len())
}

func TestWithRequest(t *testing.T) {
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("X-Correlation-ID", "corr-456")

	ctx := WithRequest(context.Background(), req)
	logger, entries := NewForTest()
	logger.With(ctx).Info("hello")

	fields := entries.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "corr-456", fields["correlation_id"])
}

func TestWithRequestGeneratesID(t *testing.T) {
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	ctx := WithRequest(context.Background(), req)

	logger, entries := NewForTest()
	logger.With(ctx).Info("hello")
	assert.NotEmpty(t, entries.All()[0].ContextMap()["request_id"])
}
