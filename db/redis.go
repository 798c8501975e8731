// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abhiraj070/RuleMind/config"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

const enabledRulesKey = "rules:enabled"

var RedisClient *redis.Client

func InitRedis(ctx context.Context) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.GetString("redis.addr"),
		Password: config.GetString("redis.password"),
		DB:       config.GetInt("redis.db"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// CacheEnabledRules stores the enabled-rule snapshot in evaluation order.
func CacheEnabledRules(ctx context.Context, rules []model.Rule) error {
	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	ttl := config.GetDuration("redis.defaultCacheTTL")
	if err := RedisClient.Set(ctx, enabledRulesKey, rulesJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rules: %w", err)
	}

	logger.Debug("Enabled rules cached successfully", zap.Int("count", len(rules)))
	return nil
}

// GetCachedEnabledRules returns nil, nil on a cache miss.
func GetCachedEnabledRules(ctx context.Context) ([]model.Rule, error) {
	rulesJSON, err := RedisClient.Get(ctx, enabledRulesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Enabled rules not found in cache")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get rules from cache: %w", err)
	}

	rules := []model.Rule{}
	if err := json.Unmarshal(rulesJSON, &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	logger.Debug("Enabled rules retrieved from cache", zap.Int("count", len(rules)))
	return rules, nil
}

func DeleteCachedEnabledRules(ctx context.Context) error {
	if err := RedisClient.Del(ctx, enabledRulesKey).Err(); err != nil {
		return fmt.Errorf("failed to delete rules from cache: %w", err)
	}
	logger.Debug("Enabled rules deleted from cache")
	return nil
}

// RateLimit is a sliding-window limiter over a sorted set. It reports
// whether the call identified by key is within limit calls per window.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-per.Nanoseconds()))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := card.Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
