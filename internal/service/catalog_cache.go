package service

import (
	"context"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogCacheKey = "course_engine:catalog:published"

// CatalogCache 已发布课程及其前置课程ID的缓存. 用户的完成情况不缓存.
// Redis 为 nil 时所有操作都是空操作
type CatalogCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Redis: rdb, TTL: ttl}
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.Redis != nil
}

// Get 未命中或读取失败时返回 false, 调用方回源数据库
func (c *CatalogCache) Get(ctx context.Context) ([]CourseSummary, bool) {
	if !c.enabled() {
		return nil, false
	}

	val, err := c.Redis.Get(ctx, catalogCacheKey).Result()
	if err == redis.Nil {
		monitoring.CatalogCacheCounter.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("Catalog cache read failed", zap.Error(err))
		monitoring.CatalogCacheCounter.WithLabelValues("error").Inc()
		return nil, false
	}

	var courses []CourseSummary
	if err := json.Unmarshal([]byte(val), &courses); err != nil {
		logger.Log.Warn("Catalog cache entry corrupted", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	monitoring.CatalogCacheCounter.WithLabelValues("hit").Inc()
	return courses, true
}

func (c *CatalogCache) Set(ctx context.Context, courses []CourseSummary) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, catalogCacheKey, data, c.TTL).Err(); err != nil {
		logger.Log.Warn("Catalog cache write failed", zap.Error(err))
	}
}

// Invalidate 管理端修改课程目录后调用
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.Redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
