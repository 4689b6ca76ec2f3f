package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL；值类型由调用方固定
type GeneralCache[V any] struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxEntries: 最多条目数，每条 cost 记为 1
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache[V any](maxEntries int64, ttl time.Duration) (*GeneralCache[V], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("缓存容量必须为正数: %d", maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10, // 官方建议计数器为条目数的 10 倍
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache[V]{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL；写入是异步的，随后的 Get 可能未命中
func (c *GeneralCache[V]) Set(key string, value V) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 设置缓存，指定 TTL
func (c *GeneralCache[V]) SetWithTTL(key string, value V, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

// Get 获取缓存
func (c *GeneralCache[V]) Get(key string) (V, bool) {
	var zero V
	value, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Wait 等待缓冲中的写入全部落地
func (c *GeneralCache[V]) Wait() {
	c.cache.Wait()
}

// Delete 删除缓存
func (c *GeneralCache[V]) Delete(key string) {
	c.cache.Del(key)
}

// Close 关闭缓存
func (c *GeneralCache[V]) Close() {
	c.cache.Close()
}
