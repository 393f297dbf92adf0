package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/xcache"
	"github.com/explore-flights/awards/common/xsync"
	"github.com/explore-flights/awards/config"
	"github.com/explore-flights/awards/db"
	"github.com/explore-flights/awards/metrics"
	"github.com/explore-flights/awards/web"
	"github.com/gorilla/feeds"
	lwamw "github.com/its-felix/aws-lwa-go-middleware"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.Config.LogLevel()}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var cache xcache.BlobCache
	if rc := config.Config.RedisClient(); rc != nil {
		defer rc.Close()
		cache = xcache.NewRedisCache(rc, "awards:")
	}

	client, err := config.Config.SeatsAeroClient(m.UpstreamResponse)
	if err != nil {
		panic(err)
	}

	ttl, err := config.Config.CacheTTL()
	if err != nil {
		panic(err)
	}

	database, err := config.Config.Database()
	if err != nil {
		panic(err)
	}

	var baseData *db.BaseDataRepo
	if database != nil {
		defer database.Close()
		baseData = db.NewBaseDataRepo(database)
	}

	var obj *tablesObject
	if bucket, key, ok := config.Config.TablesLocation(); ok {
		s3c, err := config.Config.S3Client(ctx)
		if err != nil {
			panic(err)
		}

		obj = &tablesObject{s3c: s3c, bucket: bucket, key: key}
	}

	expander := xsync.NewPreload(func() (*award.Expander, error) {
		var repo tablesRepo
		if baseData != nil {
			repo = baseData
		}

		return loadExpander(context.Background(), obj, repo)
	})

	storeOpts := []award.StoreOption{
		award.WithTTL(ttl),
		award.WithRefreshHook(m.SnapshotRefreshed),
	}
	if cache != nil {
		storeOpts = append(storeOpts, award.WithSharedCache(cache))
	}

	store := award.NewStore(client, storeOpts...)

	opts := []web.AwardsHandlerOption{web.WithRowsObserver(m)}
	if baseData != nil {
		opts = append(opts, web.WithAirlineNames(baseData))
	}

	ah := web.NewAwardsHandler(store, expander.Value, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Use(
		lwamw.EchoMiddleware(
			lwamw.WithMaskError(),
			lwamw.WithRemoveHeaders(),
		),
		web.ErrorLogAndMaskMiddleware(logger),
		web.NoCacheOnErrorMiddleware(),
	)

	{
		group := e.Group("/api")
		group.GET("/partners", ah.Partners)
		group.GET("/cities", ah.Cities)
		group.POST("/awards/share", ah.ShareCreate, web.NeverCacheMiddleware())
		group.GET("/awards/share/:payload", ah.ShareRedirect)
		group.GET("/awards/:partner", ah.Awards)
		group.GET("/awards/:partner/airlines", ah.Airlines)
		group.GET("/awards/:partner/graph.png", ah.Graph)
		group.GET("/awards/:partner/feed.rss", ah.NewAwardsFeedEndpoint("application/rss+xml", (*feeds.Feed).WriteRss))
		group.GET("/awards/:partner/feed.atom", ah.NewAwardsFeedEndpoint("application/atom+xml", (*feeds.Feed).WriteAtom))
	}

	e.GET("/metrics", echo.WrapHandler(m.Handler()), web.NeverCacheMiddleware())

	if err := run(ctx, e); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, e *echo.Echo) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down the echo server", slog.String("err", err.Error()))
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", config.Config.EchoPort())); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}
