// Package loader wraps caller-supplied option loaders with the behaviors
// the engine needs around remote option fetching: cancellation-aware
// resolution, query caching, retries with backoff, and fan-out
// composition. Cancellation is carried by the context; a superseded load
// resolves to an empty result instead of an error.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"selectkit/internal/option"
)

// Func fetches options for a search query. Implementations should honor
// ctx cancellation and may return ctx.Err() when superseded.
type Func[T comparable] func(ctx context.Context, query string) ([]option.Option[T], error)

// cancelled reports whether err represents a superseded or timed-out load.
func cancelled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Run invokes fn and normalizes cancellation: a load whose context was
// cancelled (or that returned a cancellation error) yields an empty
// result and a nil error. Any other error propagates.
func Run[T comparable](ctx context.Context, fn Func[T], query string) ([]option.Option[T], error) {
	opts, err := fn(ctx, query)
	if err != nil {
		if cancelled(ctx, err) {
			return nil, nil
		}
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, nil
	}
	return opts, nil
}

// WithCache wraps fn with an expiring LRU cache keyed by the exact query
// string. Entries expire after ttl and the cache holds at most size
// entries, evicting oldest-first. Cancelled loads are not cached.
func WithCache[T comparable](fn Func[T], size int, ttl time.Duration) Func[T] {
	cache := expirable.NewLRU[string, []option.Option[T]](size, nil, ttl)
	return func(ctx context.Context, query string) ([]option.Option[T], error) {
		if hit, ok := cache.Get(query); ok {
			return hit, nil
		}
		opts, err := fn(ctx, query)
		if err != nil || ctx.Err() != nil {
			return opts, err
		}
		cache.Add(query, opts)
		return opts, nil
	}
}

// WithRetry wraps fn with up to retries re-attempts after a failure.
// backoff > 0 sleeps between attempts, doubling each time. Cancellation
// is never retried.
func WithRetry[T comparable](fn Func[T], retries int, backoff time.Duration) Func[T] {
	return func(ctx context.Context, query string) ([]option.Option[T], error) {
		var lastErr error
		wait := backoff
		for attempt := 0; attempt <= retries; attempt++ {
			if attempt > 0 && wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				wait *= 2
			}
			opts, err := fn(ctx, query)
			if err == nil {
				return opts, nil
			}
			if cancelled(ctx, err) {
				return nil, err
			}
			lastErr = err
		}
		return nil, lastErr
	}
}

// Combine fans a query out to all loaders concurrently and concatenates
// their results in loader order. Individual loader failures are swallowed
// so one flaky source cannot take down the rest.
func Combine[T comparable](fns ...Func[T]) Func[T] {
	return func(ctx context.Context, query string) ([]option.Option[T], error) {
		results := make([][]option.Option[T], len(fns))
		var g errgroup.Group
		var mu sync.Mutex
		for i, fn := range fns {
			g.Go(func() error {
				opts, err := fn(ctx, query)
				if err != nil {
					return nil
				}
				mu.Lock()
				results[i] = opts
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var out []option.Option[T]
		for _, r := range results {
			out = append(out, r...)
		}
		return out, nil
	}
}
