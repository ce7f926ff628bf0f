package diskcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/diskcache/codec"
	pr "github.com/unkn0wn-root/diskcache/provider"
)

// Producer computes the value for a missing entry. It may block on network
// or disk I/O. Its error is returned to the Lookup caller unchanged and
// nothing is cached for that call.
type Producer[V any] func(ctx context.Context) (V, error)

// Options configure a Cache. Only Dir and Salt are required; the rest have
// sensible defaults.
type Options[V any] struct {
	// Required
	Dir  string // cache root; a leading "~" is expanded to the user's home
	Salt string // version salt; one path element, e.g. "v1" or "abi-3"

	TTL   time.Duration // idle lifetime by access time; 0 => 7 days
	Codec c.Codec[V]    // nil => codec.Msgpack[V]
	Ext   string        // entry file extension; "" => the codec's (codec.ExtOf)

	// GCInterval is the minimum spacing of sweeps started from Lookup.
	// 0 => TTL/10. Negative disables them; call GC yourself or set
	// BackgroundInterval.
	GCInterval time.Duration
	// BackgroundInterval > 0 also sweeps from a goroutine stopped by Close.
	BackgroundInterval time.Duration

	Memory pr.Provider // optional hot tier consulted before the disk
	Logger Logger      // if nil, NopLogger is used
	Hooks  Hooks       // if nil, NopHooks is used

	// NoSync skips fsync of the temporary file before it is renamed into
	// place. A crash may then leave an empty or short entry, which reads
	// back as corrupt and is regenerated.
	NoSync bool

	Now func() time.Time // nil => time.Now
}

func New[V any](opts Options[V]) (*Cache[V], error) {
	return newCache[V](opts)
}
