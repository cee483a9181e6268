package cache

import (
	"time"

	"mall-commission-api/internal/config"
)

// Cache 读侧缓存端口。业务代码只依赖该接口，
// 实现（redis/memory）在启动时选定一次。
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Del(key string)
}

// New 按配置驱动选择实现
func New() Cache {
	if config.C.Cache.Driver == "memory" {
		return NewMemoryCache()
	}
	return NewRedisCache()
}
