package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/otsempay/pix-gateway/internal/config"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

type Bootstrap struct {
	Log   *slog.Logger
	Redis *redis.Client // nil when no REDIS_URL is configured
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewStdoutHandler)
	bs.Redis, err = InitRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Redis != nil {
		bs.Redis.Close()
	}
}
