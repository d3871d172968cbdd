package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/live_location_sync/internal/models"
)

// putLiveStateScript записывает состояние, только если оно не старше закешированного.
// KEYS[1] - ключ, ARGV[1] - captured_at (UnixMicro), ARGV[2] - payload, ARGV[3] - TTL в мс.
var putLiveStateScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'captured_at')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'captured_at', ARGV[1], 'payload', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

const defaultLiveCacheTTL = 5 * time.Minute

// RedisLiveStateCache - кеш текущего состояния в Redis.
// Гонка двух записей не откатывает кеш к более старому значению.
type RedisLiveStateCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisLiveStateCache(client *redis.Client, ttl time.Duration) *RedisLiveStateCache {
	if ttl <= 0 {
		ttl = defaultLiveCacheTTL
	}
	return &RedisLiveStateCache{redisClient: client, ttl: ttl}
}

func liveStateKey(entityID uuid.UUID) string {
	return fmt.Sprintf("live_state:%s", entityID.String())
}

// Get пытается получить текущее состояние из Redis; промах - nil без ошибки
func (c *RedisLiveStateCache) Get(ctx context.Context, entityID uuid.UUID) (*models.LiveState, error) {
	val, err := c.redisClient.HGet(ctx, liveStateKey(entityID), "payload").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get live state from cache: %w", err)
	}

	state := &models.LiveState{}
	if err := json.Unmarshal(val, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal live state from cache: %w", err)
	}
	return state, nil
}

// Put сохраняет состояние в Redis, если в кеше нет более нового
func (c *RedisLiveStateCache) Put(ctx context.Context, state *models.LiveState) error {
	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal live state for cache: %w", err)
	}

	args := []any{
		strconv.FormatInt(state.CapturedAt.UnixMicro(), 10),
		val,
		c.ttl.Milliseconds(),
	}
	if err := putLiveStateScript.Run(ctx, c.redisClient, []string{liveStateKey(state.EntityID)}, args...).Err(); err != nil {
		return fmt.Errorf("failed to set live state in cache: %w", err)
	}
	return nil
}

// Invalidate удаляет состояние из кеша
func (c *RedisLiveStateCache) Invalidate(ctx context.Context, entityID uuid.UUID) error {
	if err := c.redisClient.Del(ctx, liveStateKey(entityID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate live state cache: %w", err)
	}
	return nil
}
