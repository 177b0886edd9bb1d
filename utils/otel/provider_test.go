package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProvider_Disabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Metrics, "instruments exist even without exporters")
}

func TestRecordUpstreamFetch_NilMetrics(t *testing.T) {
	saved := Metrics
	Metrics = nil
	defer func() { Metrics = saved }()

	assert.NotPanics(t, func() {
		RecordUpstreamFetch(context.Background(), "ok", time.Millisecond)
	})
}

func TestRecordUpstreamFetch(t *testing.T) {
	require.NoError(t, InitMetrics())
	assert.NotPanics(t, func() {
		RecordUpstreamFetch(context.Background(), "error", 20*time.Millisecond)
	})
}
