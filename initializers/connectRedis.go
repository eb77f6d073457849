package initializers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var RedisClient *redis.Client

func ConnectRedis(config *Config) {
	opt, err := redis.ParseURL(config.RedisUri)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}

	RedisClient = redis.NewClient(opt)

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		// Redis only backs the search cache and webhook dedup; the app can
		// run without it.
		log.Warn().Err(err).Msg("Redis is unreachable, cache and webhook dedup disabled")
		RedisClient = nil
		return
	}

	log.Info().Msg("Connected to redis")
}
