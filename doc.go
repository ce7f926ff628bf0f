// Package diskcache is a content-addressed, on-disk cache for the results of
// expensive computations. It is safe to share one cache directory between
// any number of goroutines and processes.
//
// Layout:
//
//	<dir>/<salt>/<sha256(salt+key)>.<ext>                      - entries
//	<dir>/<salt>/<sha256(salt+key)>.<pid>-<uuid>.unfinished    - in-flight writes
//
// The salt versions the whole cache: bump it when the value format or the
// producing logic changes and old entries become unreachable, to be swept by
// GC once they go idle.
//
// Each entry file holds a small checksummed envelope around the codec
// payload (see internal/wire). Entries are written to a temporary file in
// the same directory and renamed into place, so readers never see a partial
// write.
//
// Components:
//   - Codec[V]: (de)serializes V <-> []byte (msgpack by default; JSON, CBOR,
//     protobuf, raw bytes).
//   - Provider: optional in-memory or shared hot tier (Ristretto, BigCache,
//     Redis) consulted before the disk.
//   - Logger and Hooks: structured logs and high-signal events.
//
// Expiry is by access time. A sweep deletes files not accessed for TTL and
// prunes directories left empty. Lookup starts a sweep itself at most once
// per TTL/10 per Cache instance.
//
// Typical use:
//
//	cache, err := diskcache.New[Result](diskcache.Options[Result]{
//	    Dir:  "~/.cache/myapp",
//	    Salt: "v1",
//	    TTL:  24 * time.Hour,
//	})
//	...
//	res, err := cache.Lookup(ctx, input, func(ctx context.Context) (Result, error) {
//	    return compute(ctx, input)
//	})
package diskcache
