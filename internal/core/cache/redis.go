package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache 可选的 redis 读穿缓存。nil 或未配置地址时直接回源。
type Cache struct {
	RDB *redis.Client
	TTL time.Duration
	sf  singleflight.Group
}

func New(addr, pass string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		TTL: ttl,
	}
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// singleflight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, c.TTL).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func genKey(ns string) string { return ns + ":gen" }

// VersionedKey 把命名空间当前代号拼进 key："<ns>:<gen>:<name>"。
// Bump 之后旧代号的 key 不会再被读到，回源晚于写操作落下的旧值只会等 TTL 过期。
func (c *Cache) VersionedKey(ctx context.Context, ns, name string) (string, error) {
	if !c.Enabled() {
		return ns + ":" + name, nil
	}
	gen, err := c.RDB.Get(ctx, genKey(ns)).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return "", fmt.Errorf("cache gen %s: %w", ns, err)
	}
	return fmt.Sprintf("%s:%d:%s", ns, gen, name), nil
}

// Bump 写操作提交后调用，让命名空间下所有已缓存的值失效
func (c *Cache) Bump(ctx context.Context, ns string) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Incr(ctx, genKey(ns)).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}
