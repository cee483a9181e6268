package cache

import (
	"time"

	"mall-commission-api/internal/dal"
)

// RedisCache 生产实现，复用 dal 的 redis 连接
type RedisCache struct{}

func NewRedisCache() *RedisCache { return &RedisCache{} }

func (c *RedisCache) Get(key string) (string, bool) {
	val, err := dal.RedisClient.Get(dal.RedisCtx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(key string, value string, ttl time.Duration) {
	_ = dal.RedisClient.Set(dal.RedisCtx, key, value, ttl).Err()
}

func (c *RedisCache) Del(key string) {
	_ = dal.RedisClient.Del(dal.RedisCtx, key).Err()
}
