package award

import (
	"context"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/common/xcache"
	jsoniter "github.com/json-iterator/go"
	"log/slog"
	"time"
)

var cacheJson = jsoniter.ConfigCompatibleWithStandardLibrary

// cachedFetch is one routes and availability pair, always fetched together.
type cachedFetch struct {
	FetchedAt    time.Time                `json:"fetchedAt"`
	Routes       []seatsaero.Route        `json:"routes"`
	Availability []seatsaero.Availability `json:"availability"`
}

// WithSharedCache shares fetch results between instances. Routes and
// availability of a partner are stored as a single entry so a snapshot is
// never built from bodies of different fetches.
func WithSharedCache(cache xcache.BlobCache) StoreOption {
	return func(s *Store) {
		s.cache = cache
	}
}

func snapshotCacheKey(partner string) string {
	return "snapshot:" + partner
}

func (s *Store) cachedSnapshot(ctx context.Context, partner string) (*Snapshot, bool) {
	b, ok, err := s.cache.Get(ctx, snapshotCacheKey(partner))
	if err != nil || !ok {
		return nil, false
	}

	var cf cachedFetch
	if err = cacheJson.Unmarshal(b, &cf); err != nil {
		slog.WarnContext(ctx, "discarding unreadable cache entry", slog.String("partner", partner), slog.String("err", err.Error()))
		return nil, false
	}

	if age := s.clock().Sub(cf.FetchedAt); age < 0 || age >= s.ttl {
		return nil, false
	}

	snap, err := NewSnapshot(partner, cf.Routes, cf.Availability, cf.FetchedAt)
	if err != nil {
		slog.WarnContext(ctx, "discarding inconsistent cache entry", slog.String("partner", partner), slog.String("err", err.Error()))
		return nil, false
	}

	return snap, true
}

func (s *Store) storeSnapshot(ctx context.Context, partner string, cf cachedFetch) {
	b, err := cacheJson.Marshal(cf)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode cache entry", slog.String("partner", partner), slog.String("err", err.Error()))
		return
	}

	// RedisCache logs its own failures
	_ = s.cache.Set(ctx, snapshotCacheKey(partner), b, s.ttl)
}
