package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/teemow/calendarenv/internal/instrumentation"
)

func TestServerContext_CalendarClient(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	require.NoError(t, err)

	_, err = sc.CalendarClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	env := newTestEnvironment(t)
	sc.SetEnvironment(env)
	client, err := sc.CalendarClient()
	require.NoError(t, err)
	assert.Same(t, env.Client(), client)

	require.NoError(t, sc.Shutdown())
	_, err = sc.CalendarClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutting down")
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, sc.IsShutdown())

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Error(t, sc.Context().Err())

	// Second shutdown is a no-op.
	require.NoError(t, sc.Shutdown())
}

func TestServerContext_Options(t *testing.T) {
	metrics, err := instrumentation.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	audit := instrumentation.NewAuditLogger(nil)

	sc, err := NewServerContext(context.Background(), nil, WithMetrics(metrics), WithAuditLogger(audit), WithReadOnly(true))
	require.NoError(t, err)
	defer sc.Shutdown()

	assert.Same(t, metrics, sc.Metrics())
	assert.Same(t, audit, sc.AuditLogger())
	assert.True(t, sc.ReadOnly())
	assert.NotNil(t, sc.Logger())

	sc.SetMetrics(nil)
	assert.Nil(t, sc.Metrics())
	sc.SetAuditLogger(nil)
	assert.Nil(t, sc.AuditLogger())
}
