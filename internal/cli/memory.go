package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/diskcache"
	pr "github.com/unkn0wn-root/diskcache/provider"
	"github.com/unkn0wn-root/diskcache/provider/bigcache"
	"github.com/unkn0wn-root/diskcache/provider/redis"
	"github.com/unkn0wn-root/diskcache/provider/ristretto"
)

// avgEntryBytes sizes Ristretto's admission counters from the byte budget.
const avgEntryBytes = 4 << 10

// newMemory builds the optional hot tier; nil when none is configured.
// Redis is the one that pays off across CLI invocations.
func newMemory(ctx context.Context, cfg Config) (pr.Provider, error) {
	var (
		p   pr.Provider
		err error
	)
	switch cfg.Memory {
	case "":
		return nil, nil
	case "ristretto":
		maxCost := int64(cfg.MemoryMB) << 20
		p, err = ristretto.New(ristretto.Config{
			NumCounters: 10 * max(maxCost/avgEntryBytes, 1),
			MaxCost:     maxCost,
		})
	case "bigcache":
		life := cfg.TTL
		if life <= 0 {
			life = diskcache.DefaultTTL
		}
		p, err = bigcache.New(ctx, bigcache.Config{
			LifeWindow:         life,
			HardMaxCacheSizeMB: cfg.MemoryMB,
		})
	case "redis":
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		p, err = redis.New(redis.Config{Client: rdb, CloseClient: true})
	default:
		return nil, fmt.Errorf("unknown memory tier %q", cfg.Memory)
	}
	if err != nil {
		return nil, fmt.Errorf("memory tier %s: %w", cfg.Memory, err)
	}
	return p, nil
}
