package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Cache 统计接口的读穿缓存。rdb 为 nil 时所有操作直接落空，
// 调用方无需感知 redis 是否启用。
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return &Cache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, stats caching disabled: %v", err)
		return &Cache{}
	}

	ttl := time.Duration(cfg.TTL) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	logger.Info("Stats cache enabled (redis %s, ttl %s)", cfg.Addr, ttl)
	return &Cache{rdb: rdb, ttl: ttl}
}

// Enabled 缓存是否可用
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON 读取并反序列化，未命中返回 false
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("Failed to decode cached value for %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON 序列化并按 TTL 写入，失败只记日志
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to encode value for %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("Failed to cache %s: %v", key, err)
	}
}
