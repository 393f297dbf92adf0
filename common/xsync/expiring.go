package xsync

import (
	"context"
	"golang.org/x/sync/singleflight"
	"sync/atomic"
	"time"
)

type expiringValue[T any] struct {
	value     T
	fetchedAt time.Time
}

// Expiring memoizes the result of fetch for ttl. Concurrent callers that
// observe a stale value share a single fetch. Errors are never memoized.
type Expiring[T any] struct {
	fetch func(ctx context.Context) (T, error)
	ttl   time.Duration
	clock func() time.Time
	stamp func(T) time.Time
	group *singleflight.Group
	curr  *atomic.Pointer[expiringValue[T]]
}

type ExpiringOption[T any] func(e *Expiring[T])

// WithTimestamp ages a fetched value from the time stamp returns instead of
// the time the fetch completed.
func WithTimestamp[T any](stamp func(T) time.Time) ExpiringOption[T] {
	return func(e *Expiring[T]) {
		e.stamp = stamp
	}
}

func WithClock[T any](clock func() time.Time) ExpiringOption[T] {
	return func(e *Expiring[T]) {
		e.clock = clock
	}
}

func NewExpiring[T any](ttl time.Duration, fetch func(ctx context.Context) (T, error), opts ...ExpiringOption[T]) *Expiring[T] {
	e := &Expiring[T]{
		fetch: fetch,
		ttl:   ttl,
		group: new(singleflight.Group),
		curr:  new(atomic.Pointer[expiringValue[T]]),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = time.Now
	}

	return e
}

// Value returns the memoized value and the time it was fetched at.
func (e *Expiring[T]) Value(ctx context.Context) (T, time.Time, error) {
	if v, ok := e.fresh(); ok {
		return v.value, v.fetchedAt, nil
	}

	ch := e.group.DoChan("", func() (any, error) {
		if v, ok := e.fresh(); ok {
			return v, nil
		}

		value, err := e.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		fetchedAt := e.clock()
		if e.stamp != nil {
			fetchedAt = e.stamp(value)
		}

		v := &expiringValue[T]{
			value:     value,
			fetchedAt: fetchedAt,
		}
		e.curr.Store(v)

		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, time.Time{}, res.Err
		}

		v := res.Val.(*expiringValue[T])
		return v.value, v.fetchedAt, nil

	case <-ctx.Done():
		var zero T
		return zero, time.Time{}, ctx.Err()
	}
}

// Invalidate drops the memoized value; the next Value call fetches again.
func (e *Expiring[T]) Invalidate() {
	e.curr.Store(nil)
}

func (e *Expiring[T]) fresh() (*expiringValue[T], bool) {
	v := e.curr.Load()
	if v == nil {
		return nil, false
	}

	return v, e.clock().Sub(v.fetchedAt) < e.ttl
}
