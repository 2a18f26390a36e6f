package main

import (
	"context"
	"log"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/mail-sentry/internal/config"
	"github.com/yourusername/mail-sentry/internal/user"
)

// setupViewCache は REDIS_URL が設定されている場合にユーザービューキャッシュを構築します。
// キャッシュはあくまで最適化なので、Redisに繋がらない場合は警告を出して無効のまま起動します。
func setupViewCache(cfg *config.Config) *user.ViewCache {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, user view cache disabled: %v", err)
		return nil
	}

	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, user view cache disabled: %v", err)
		_ = redisClient.Close()
		return nil
	}

	ttl := time.Duration(cfg.UserCacheTTLSeconds) * time.Second
	log.Printf("User view cache enabled (ttl: %s)", ttl)
	return user.NewViewCache(redisClient, ttl)
}
