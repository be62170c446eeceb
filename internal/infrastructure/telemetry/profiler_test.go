package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddressAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "fanaticos"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestWithProfilingLabels_RunsFn(t *testing.T) {
	calls := 0
	WithProfilingLabels(context.Background(), map[string]string{"operation": "transfer"}, func(context.Context) { calls++ })
	WithProfilingLabels(context.Background(), nil, func(context.Context) { calls++ })
	WithProfilingLabels(context.Background(), map[string]string{"": "x"}, func(context.Context) { calls++ })
	assert.Equal(t, 3, calls)
}
