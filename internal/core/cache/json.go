package cache

import (
	"context"
	"encoding/json"
)

func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	b, err := c.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}
