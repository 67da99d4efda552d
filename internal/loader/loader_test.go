package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectkit/internal/option"
)

func fixed(labels ...string) Func[string] {
	return func(ctx context.Context, query string) ([]option.Option[string], error) {
		out := make([]option.Option[string], len(labels))
		for i, l := range labels {
			out[i] = option.Option[string]{Value: l, Label: l}
		}
		return out, nil
	}
}

func failing(err error) Func[string] {
	return func(ctx context.Context, query string) ([]option.Option[string], error) {
		return nil, err
	}
}

func TestRunNormalizesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, err := Run(ctx, failing(context.Canceled), "q")
	require.NoError(t, err, "a cancelled load resolves empty, not as an error")
	assert.Empty(t, opts)

	// A load that succeeded after its context was cancelled is stale and
	// also resolves empty.
	opts, err = Run(ctx, fixed("a"), "q")
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestRunPropagatesRealErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), failing(boom), "q")
	assert.ErrorIs(t, err, boom)
}

func TestWithCacheHitsAndExpires(t *testing.T) {
	var calls atomic.Int32
	fn := WithCache(func(ctx context.Context, query string) ([]option.Option[string], error) {
		calls.Add(1)
		return []option.Option[string]{{Value: query, Label: query}}, nil
	}, 8, 50*time.Millisecond)

	ctx := context.Background()
	_, err := fn(ctx, "a")
	require.NoError(t, err)
	_, err = fn(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "second identical query served from cache")

	time.Sleep(80 * time.Millisecond)
	_, err = fn(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "entry expired after TTL")
}

func TestWithCacheBoundedSize(t *testing.T) {
	var calls atomic.Int32
	fn := WithCache(func(ctx context.Context, query string) ([]option.Option[string], error) {
		calls.Add(1)
		return nil, nil
	}, 1, time.Minute)

	ctx := context.Background()
	_, _ = fn(ctx, "a")
	_, _ = fn(ctx, "b") // evicts "a"
	_, _ = fn(ctx, "a")
	assert.Equal(t, int32(3), calls.Load())
}

func TestWithRetryEventuallySucceeds(t *testing.T) {
	var calls atomic.Int32
	fn := WithRetry(func(ctx context.Context, query string) ([]option.Option[string], error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("flaky")
		}
		return []option.Option[string]{{Value: "ok", Label: "ok"}}, nil
	}, 3, 0)

	opts, err := fn(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, opts, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	fn := WithRetry(func(ctx context.Context, query string) ([]option.Option[string], error) {
		calls.Add(1)
		return nil, boom
	}, 2, 0)

	_, err := fn(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), calls.Load(), "one initial attempt plus two retries")
}

func TestWithRetryNeverRetriesCancellation(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	fn := WithRetry(func(ctx context.Context, query string) ([]option.Option[string], error) {
		calls.Add(1)
		cancel()
		return nil, ctx.Err()
	}, 5, 0)

	_, err := fn(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCombineConcatenatesAndSwallowsFailures(t *testing.T) {
	fn := Combine(
		fixed("a", "b"),
		failing(errors.New("down")),
		fixed("c"),
	)

	opts, err := fn(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, option.Values(opts), "results keep loader order")
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var got atomic.Value

	d.Do(func() { got.Store("first") })
	d.Do(func() { got.Store("second") })

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "second", got.Load(), "only the last call in the burst runs")
}

func TestDebouncerZeroDelayRunsSynchronously(t *testing.T) {
	d := NewDebouncer(0)
	ran := false
	d.Do(func() { ran = true })
	assert.True(t, ran)
}

func TestDebouncerCancelAndFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	d.Do(func() { calls.Add(1) })
	d.Cancel()
	d.Flush()
	assert.Equal(t, int32(0), calls.Load(), "cancelled work never runs")

	d.Do(func() { calls.Add(1) })
	d.Flush()
	assert.Equal(t, int32(1), calls.Load(), "flush runs the pending call immediately")
	d.Flush()
	assert.Equal(t, int32(1), calls.Load(), "flush is idempotent")
}
