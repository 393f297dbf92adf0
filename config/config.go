package config

import (
	"cmp"
	"context"
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/adapt"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/db"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"log/slog"
	"os"
	"time"
)

type Accessor interface {
	EchoPort() int
	LogLevel() slog.Level
	CacheTTL() (time.Duration, error)
	S3Client(ctx context.Context) (adapt.S3Getter, error)
	SeatsAeroClient(hook seatsaero.ResponseHook) (*seatsaero.Client, error)
	// RedisClient returns nil if no shared cache is configured.
	RedisClient() *redis.Client
	// Database returns nil if no base data database is configured.
	Database() (*db.Database, error)
	TablesLocation() (string, string, bool)
}

// seats.aero allows 1000 requests per day for partner keys
func seatsAeroLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(24*time.Hour)*1000, 10)
}

func newSeatsAeroClient(apiKey string, hook seatsaero.ResponseHook) *seatsaero.Client {
	opts := []seatsaero.ClientOption{
		seatsaero.WithRateLimiter(seatsAeroLimiter()),
		seatsaero.WithResponseHook(hook),
	}

	if baseUrl := os.Getenv("FLIGHTS_SEATSAERO_BASE_URL"); baseUrl != "" {
		opts = append(opts, seatsaero.WithBaseUrl(baseUrl))
	}

	return seatsaero.NewClient(apiKey, opts...)
}

func cacheTTL() (time.Duration, error) {
	v := os.Getenv("FLIGHTS_CACHE_TTL")
	if v == "" {
		return award.DefaultTTL, nil
	}

	ttl, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid FLIGHTS_CACHE_TTL: %w", err)
	} else if ttl <= 0 {
		return 0, fmt.Errorf("invalid FLIGHTS_CACHE_TTL: %s must be positive", ttl)
	}

	return ttl, nil
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmp.Or(os.Getenv("FLIGHTS_LOG_LEVEL"), "INFO"))); err != nil {
		return slog.LevelInfo
	}

	return level
}

func redisClient() *redis.Client {
	addr := os.Getenv("FLIGHTS_REDIS_ADDR")
	if addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("FLIGHTS_REDIS_PASSWORD"),
	})
}

func tablesLocation() (string, string, bool) {
	bucket := os.Getenv("FLIGHTS_TABLES_BUCKET")
	if bucket == "" {
		return "", "", false
	}

	return bucket, cmp.Or(os.Getenv("FLIGHTS_TABLES_KEY"), "awards/tables.json"), true
}

// database uses FLIGHTS_BASEDATA_DB, which must exist if set. defaultPath is
// only used if present.
func database(defaultPath string) (*db.Database, error) {
	if path := os.Getenv("FLIGHTS_BASEDATA_DB"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("base data database %q: %w", path, err)
		}

		return db.NewDatabase(path), nil
	}

	if defaultPath == "" {
		return nil, nil
	}

	if _, err := os.Stat(defaultPath); err != nil {
		return nil, nil
	}

	return db.NewDatabase(defaultPath), nil
}
