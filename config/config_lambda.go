//go:build lambda

package config

import (
	"cmp"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/explore-flights/awards/common/adapt"
	"github.com/explore-flights/awards/common/seatsaero"
	"github.com/explore-flights/awards/db"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

var Config = func() *accessor {
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(context.Background())
	})

	ssmParamsDone := make(chan struct{})
	a := &accessor{
		awsConfig:     awsConfig,
		ssmParamsDone: ssmParamsDone,
	}

	go func() {
		defer close(ssmParamsDone)

		cfg, err := awsConfig()
		if err != nil {
			a.ssmParamsErr = err
			return
		}

		a.ssmParams, a.ssmParamsErr = loadSsmParams(
			context.Background(),
			cfg,
			"FLIGHTS_SSM_SEATSAERO_API_KEY",
		)
	}()

	return a
}()

type accessor struct {
	awsConfig     func() (aws.Config, error)
	ssmParamsDone <-chan struct{}
	ssmParams     map[string]string
	ssmParamsErr  error
}

func (*accessor) EchoPort() int {
	port, _ := strconv.Atoi(os.Getenv("AWS_LWA_PORT"))
	return cmp.Or(port, 8080)
}

func (*accessor) LogLevel() slog.Level {
	return logLevel()
}

func (*accessor) CacheTTL() (time.Duration, error) {
	return cacheTTL()
}

func (a *accessor) S3Client(ctx context.Context) (adapt.S3Getter, error) {
	cfg, err := a.awsConfig()
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg), nil
}

func (a *accessor) SeatsAeroClient(hook seatsaero.ResponseHook) (*seatsaero.Client, error) {
	params, err := a.getSsmParams()
	if err != nil {
		return nil, err
	}

	return newSeatsAeroClient(params["FLIGHTS_SSM_SEATSAERO_API_KEY"], hook), nil
}

func (*accessor) RedisClient() *redis.Client {
	return redisClient()
}

func (*accessor) Database() (*db.Database, error) {
	return database("/opt/data/basedata.db")
}

func (*accessor) TablesLocation() (string, string, bool) {
	return tablesLocation()
}

func (a *accessor) getSsmParams() (map[string]string, error) {
	<-a.ssmParamsDone
	return a.ssmParams, a.ssmParamsErr
}

func loadSsmParams(ctx context.Context, cfg aws.Config, envNames ...string) (map[string]string, error) {
	reqNames := make([]string, 0, len(envNames))
	lookup := make(map[string]string)

	for _, envName := range envNames {
		reqName := os.Getenv(envName)
		if reqName == "" {
			return nil, fmt.Errorf("env variable %s required", envName)
		}

		reqNames = append(reqNames, reqName)
		lookup[reqName] = envName
	}

	ssmc := ssm.NewFromConfig(cfg)
	resp, err := ssmc.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          reqNames,
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return nil, err
	} else if len(resp.InvalidParameters) > 0 {
		return nil, fmt.Errorf("ssm invalid parameters: %v", resp.InvalidParameters)
	}

	result := make(map[string]string)
	for _, p := range resp.Parameters {
		result[lookup[*p.Name]] = *p.Value
	}

	return result, nil
}
