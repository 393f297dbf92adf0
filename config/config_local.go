//go:build !lambda

package config

import (
	"context"
	"errors"
	"github.com/explore-flights/awards/common/adapt"
	"github.com/explore-flights/awards/common/local"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

var Config = func() accessor {
	// a missing .env is fine, the environment may be set already
	_ = godotenv.Load()
	return accessor{}
}()

type accessor struct{}

func (accessor) EchoPort() int {
	return 8080
}

func (accessor) LogLevel() slog.Level {
	return logLevel()
}

func (accessor) CacheTTL() (time.Duration, error) {
	return cacheTTL()
}

func (accessor) S3Client(ctx context.Context) (adapt.S3Getter, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return local.NewS3Client(filepath.Join(home, "Downloads", "local_s3")), nil
}

func (accessor) SeatsAeroClient(hook seatsaero.ResponseHook) (*seatsaero.Client, error) {
	apiKey := os.Getenv("FLIGHTS_SEATSAERO_API_KEY")
	if apiKey == "" {
		return nil, errors.New("env variable FLIGHTS_SEATSAERO_API_KEY required")
	}

	return newSeatsAeroClient(apiKey, hook), nil
}

func (accessor) RedisClient() *redis.Client {
	return redisClient()
}

func (accessor) Database() (*db.Database, error) {
	return database("")
}

func (accessor) TablesLocation() (string, string, bool) {
	return tablesLocation()
}
