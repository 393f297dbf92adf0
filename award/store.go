package award

import (
	"context"
	"github.com/explore-flights/awards/common/concurrent"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/common/xcache"
	"github.com/explore-flights/awards/common/xsync"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"time"
)

const DefaultTTL = time.Minute * 15

type Source interface {
	Routes(ctx context.Context) ([]seatsaero.Route, error)
	Availability(ctx context.Context, source string) ([]seatsaero.Availability, error)
}

type StoreOption func(s *Store)

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithRefreshHook is called after every successful refresh.
func WithRefreshHook(hook func(partner string, d time.Duration, records int)) StoreOption {
	return func(s *Store) {
		s.onRefresh = hook
	}
}

// Store keeps one time-boxed Snapshot per partner.
type Store struct {
	src       Source
	ttl       time.Duration
	clock     func() time.Time
	onRefresh func(partner string, d time.Duration, records int)
	cache     xcache.BlobCache
	entries   concurrent.Map[string, *xsync.Expiring[*Snapshot]]
}

func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		src:     src,
		ttl:     DefaultTTL,
		clock:   time.Now,
		entries: concurrent.NewMap[string, *xsync.Expiring[*Snapshot]](),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Snapshot(ctx context.Context, partner string) (*Snapshot, error) {
	if _, err := LookupPartner(partner); err != nil {
		return nil, err
	}

	e, _ := s.entries.LoadOrCompute(partner, func() *xsync.Expiring[*Snapshot] {
		return xsync.NewExpiring(
			s.ttl,
			func(ctx context.Context) (*Snapshot, error) {
				return s.fetch(ctx, partner)
			},
			xsync.WithClock[*Snapshot](s.clock),
			xsync.WithTimestamp(func(snap *Snapshot) time.Time { return snap.FetchedAt }),
		)
	})

	snap, _, err := e.Value(ctx)
	return snap, err
}

// Invalidate forces the next Snapshot call for partner to fetch again.
func (s *Store) Invalidate(partner string) {
	if e, ok := s.entries.Load(partner); ok {
		e.Invalidate()
	}
}

func (s *Store) fetch(ctx context.Context, partner string) (*Snapshot, error) {
	if s.cache != nil {
		if snap, ok := s.cachedSnapshot(ctx, partner); ok {
			slog.DebugContext(ctx, "loaded availabilities from cache", slog.String("partner", partner), slog.Time("fetchedAt", snap.FetchedAt))
			return snap, nil
		}
	}

	start := s.clock()

	var routes []seatsaero.Route
	var avails []seatsaero.Availability

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		routes, err = s.src.Routes(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		avails, err = s.src.Availability(gCtx, partner)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "failed to fetch availabilities", slog.String("partner", partner), slog.String("err", err.Error()))
		return nil, err
	}

	fetchedAt := s.clock()
	snap, err := NewSnapshot(partner, routes, avails, fetchedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build snapshot", slog.String("partner", partner), slog.String("err", err.Error()))
		return nil, err
	}

	if s.cache != nil {
		s.storeSnapshot(ctx, partner, cachedFetch{
			FetchedAt:    fetchedAt,
			Routes:       routes,
			Availability: avails,
		})
	}

	d := fetchedAt.Sub(start)
	slog.InfoContext(
		ctx,
		"refreshed availabilities",
		slog.String("partner", partner),
		slog.Int("routes", len(routes)),
		slog.Int("availabilities", len(avails)),
		slog.Duration("duration", d),
	)

	if s.onRefresh != nil {
		s.onRefresh(partner, d, len(avails))
	}

	return snap, nil
}
