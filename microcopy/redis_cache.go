// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/elevenways/lingo/log"
)

const redisCacheKeyPrefix = "microcopy:candidates:"

type (
	redisCache struct {
		client *redis.Client
		cfg    *config
	}
	// none is explicit so a cached empty response survives the msgpack roundtrip
	// as "known empty" instead of degrading into a cache miss.
	redisCachePayload struct {
		Records []*Record `msgpack:"records"`
		None    bool      `msgpack:"none"`
	}
)

func mustNewRedisCache(ctx context.Context, cfg *config) *redisCache {
	opts, err := redis.ParseURL(cfg.Microcopy.Cache.URL)
	log.Panic(errors.Wrapf(err, "failed to parse remote fallback cache url %v", cfg.Microcopy.Cache.URL)) //nolint:revive // Intended.
	opts.ContextTimeoutEnabled = true
	client := redis.NewClient(opts)
	result, err := client.Ping(ctx).Result()
	log.Panic(err)
	if result != "PONG" {
		log.Panic(errors.Errorf("unexpected ping response: %v", result))
	}

	return &redisCache{client: client, cfg: cfg}
}

func (c *redisCache) get(ctx context.Context, cacheKey string) ([]*Record, bool, error) {
	data, err := c.client.Get(ctx, redisCacheKeyPrefix+cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "failed to get cached records for %v", cacheKey)
	}
	var payload redisCachePayload
	if err = msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, errors.Wrapf(err, "failed to unmarshal cached records for %v", cacheKey)
	}
	if payload.None {
		return nil, true, nil
	}

	return payload.Records, true, nil
}

func (c *redisCache) set(ctx context.Context, cacheKey string, records []*Record) error {
	data, err := msgpack.Marshal(&redisCachePayload{Records: records, None: len(records) == 0})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal records for %v", cacheKey)
	}

	return errors.Wrapf(c.client.Set(ctx, redisCacheKeyPrefix+cacheKey, data, c.cfg.Microcopy.Cache.TTL).Err(),
		"failed to cache records for %v", cacheKey)
}

func (c *redisCache) clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, redisCacheKeyPrefix+"*", 100).Result() //nolint:gomnd // Scan batch size.
		if err != nil {
			return errors.Wrap(err, "failed to scan remote fallback cache keys")
		}
		if len(keys) != 0 {
			if err = c.client.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(err, "failed to delete remote fallback cache keys")
			}
		}
		if cursor = nextCursor; cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Close() error {
	return errors.Wrap(c.client.Close(), "failed to close the redis client")
}
