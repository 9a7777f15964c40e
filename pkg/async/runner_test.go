package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventaro/storefront/pkg/async"
)

type ctxKey struct{}

func TestRunner_RunsDetachedFromCaller(t *testing.T) {
	t.Parallel()

	r := async.NewRunner()
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))

	var got atomic.Value
	release := make(chan struct{})
	require.NoError(t, r.Go(ctx, "task", func(ctx context.Context) error {
		<-release
		got.Store(ctx.Value(ctxKey{}))
		return ctx.Err()
	}))

	cancel()
	close(release)
	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, "req-1", got.Load())
}

func TestRunner_Limit(t *testing.T) {
	t.Parallel()

	r := async.NewRunner(async.WithLimit(1))
	block := make(chan struct{})

	require.NoError(t, r.Go(context.Background(), "first", func(context.Context) error {
		<-block
		return nil
	}))
	assert.ErrorIs(t, r.Go(context.Background(), "second", func(context.Context) error { return nil }), async.ErrBusy)

	close(block)
	require.NoError(t, r.Close(context.Background()))
}

func TestRunner_Close(t *testing.T) {
	t.Parallel()

	r := async.NewRunner(async.WithTimeout(time.Second))
	var ran atomic.Int32
	for range 5 {
		require.NoError(t, r.Go(context.Background(), "task", func(context.Context) error {
			ran.Add(1)
			return errors.New("logged, not returned")
		}))
	}
	require.NoError(t, r.Go(context.Background(), "panics", func(context.Context) error { panic("boom") }))

	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, int32(5), ran.Load())
	assert.ErrorIs(t, r.Go(context.Background(), "late", func(context.Context) error { return nil }), async.ErrClosed)
}

func TestRunner_CloseTimeout(t *testing.T) {
	t.Parallel()

	r := async.NewRunner()
	block := make(chan struct{})
	defer close(block)
	require.NoError(t, r.Go(context.Background(), "stuck", func(context.Context) error {
		<-block
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Close(ctx), context.DeadlineExceeded)
}
