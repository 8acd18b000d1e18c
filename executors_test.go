package disposables_test

import (
	"context"
	"testing"

	"github.com/brickingsoft/disposables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartup(t *testing.T) {
	require.NoError(t, disposables.Startup())
	t.Cleanup(func() {
		assert.NoError(t, disposables.Shutdown())
	})
	ctx, err := disposables.With(context.Background())
	require.NoError(t, err)
	resource := &asyncCloser{ctx: ctx}
	rc, err := disposables.NewSelfReferenceCountedAsync(ctx, resource, disposables.WithName("stream"))
	require.NoError(t, err)
	ref := rc.AddReference()
	require.NoError(t, await(t, rc.Close()))
	assert.Equal(t, int64(0), resource.closed.Load())
	require.NoError(t, await(t, ref.Close()))
	assert.Equal(t, int64(1), resource.closed.Load())
	assert.True(t, rc.IsDisposed())
}

func TestStartup_ReplacesExecutors(t *testing.T) {
	t.Cleanup(func() {
		assert.NoError(t, disposables.Shutdown())
	})
	first, err := disposables.Executors()
	require.NoError(t, err)
	require.NoError(t, disposables.Startup())
	second, err := disposables.Executors()
	require.NoError(t, err)
	assert.True(t, first != second)
	again, err := disposables.Executors()
	require.NoError(t, err)
	assert.True(t, second == again)
}

func TestShutdown(t *testing.T) {
	first, err := disposables.Executors()
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NoError(t, disposables.Shutdown())
	assert.NoError(t, disposables.Shutdown())
	second, err := disposables.Executors()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NoError(t, disposables.Shutdown())
}
