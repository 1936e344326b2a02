// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"fmt"
	"strings"
	"sync"
	stdlibtime "time"

	"github.com/zeebo/xxh3"

	"github.com/elevenways/lingo/log"
)

// candidateCacheKey derives a stable digest for (key, sorted parameter names, locales),
// identical for semantically identical requests regardless of map iteration order.
func candidateCacheKey(key string, parameterNames []string, locales []Language) string {
	var sb strings.Builder
	sb.WriteString(key)
	sb.WriteByte(0x0)
	sb.WriteString(strings.Join(parameterNames, "\x1f"))
	sb.WriteByte(0x0)
	sb.WriteString(strings.Join(locales, "\x1f"))

	return fmt.Sprintf("%x", xxh3.HashString(sb.String()))
}

func newCache(ctx context.Context, cfg *config) remoteCache {
	switch strings.ToLower(cfg.Microcopy.Cache.Backend) {
	case "", "memory":
		return newMemoryCache(cfg.Microcopy.Cache.TTL)
	case "redis":
		return mustNewRedisCache(ctx, cfg)
	default:
		log.Panic(fmt.Sprintf("unsupported remote fallback cache backend %q", cfg.Microcopy.Cache.Backend))

		return nil
	}
}

type (
	memoryCache struct {
		mx      *sync.RWMutex
		entries map[string]*cacheEntry
		now     func() stdlibtime.Time
		ttl     stdlibtime.Duration
	}
	// A nil records slice with none=false never occurs: a successful empty
	// response is stored with none=true, the explicit "known empty" sentinel.
	cacheEntry struct {
		expiresAt stdlibtime.Time
		records   []*Record
		none      bool
	}
)

func newMemoryCache(ttl stdlibtime.Duration) *memoryCache {
	return &memoryCache{
		mx:      new(sync.RWMutex),
		entries: make(map[string]*cacheEntry),
		now:     func() stdlibtime.Time { return stdlibtime.Now().UTC() },
		ttl:     ttl,
	}
}

func (c *memoryCache) get(_ context.Context, cacheKey string) ([]*Record, bool, error) {
	c.mx.RLock()
	entry, found := c.entries[cacheKey]
	c.mx.RUnlock()
	if !found || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	if entry.none {
		return nil, true, nil
	}

	return entry.records, true, nil
}

func (c *memoryCache) set(_ context.Context, cacheKey string, records []*Record) error {
	entry := &cacheEntry{expiresAt: c.now().Add(c.ttl), records: records, none: len(records) == 0}
	c.mx.Lock()
	c.entries[cacheKey] = entry
	c.mx.Unlock()

	return nil
}

func (c *memoryCache) clear(_ context.Context) error {
	c.mx.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mx.Unlock()

	return nil
}
