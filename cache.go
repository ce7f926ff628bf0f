package diskcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	c "github.com/unkn0wn-root/diskcache/codec"
	"github.com/unkn0wn-root/diskcache/internal/util"
	"github.com/unkn0wn-root/diskcache/internal/wire"
	pr "github.com/unkn0wn-root/diskcache/provider"
)

// Cache is a content-addressed disk cache for values of type V.
//
// Entries live at <dir>/<salt>/<sha256(salt+key)>.<ext>. They are written to a
// per-writer temporary file next to the target and renamed into place, so a
// reader sees either a complete old entry or a complete new one. No locks are
// taken around population: concurrent misses on one key may all run the
// producer, and the last rename wins.
//
// A Cache is safe for concurrent use, and any number of processes may share a
// root.
type Cache[V any] struct {
	dir   string
	salt  string
	ext   string
	ttl   time.Duration
	codec c.Codec[V]
	mem   pr.Provider
	log   Logger
	hooks Hooks
	now   func() time.Time

	noSync     bool
	gcEvery    time.Duration // < 0 => no sweeps from Lookup
	touchAfter time.Duration

	lastGC   atomic.Int64 // unix nanos of the last sweep start; 0 => never
	sweeping atomic.Bool
	closed   atomic.Bool

	// background sweeps
	bgCtx     context.Context
	bgCancel  context.CancelFunc
	ticker    *time.Ticker
	closeWg   sync.WaitGroup
	closeOnce sync.Once
}

func newCache[V any](opts Options[V]) (*Cache[V], error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("diskcache: dir is required")
	}
	if err := validSalt(opts.Salt); err != nil {
		return nil, err
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("diskcache: negative ttl %s", opts.TTL)
	}
	if strings.ContainsAny(opts.Ext, `/\`) || strings.HasPrefix(opts.Ext, ".") ||
		"."+opts.Ext == unfinishedSuffix {
		return nil, fmt.Errorf("diskcache: invalid extension %q", opts.Ext)
	}
	dir, err := expandHome(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("diskcache: expand %q: %w", opts.Dir, err)
	}

	cc := &Cache[V]{
		dir:    filepath.Clean(dir),
		salt:   opts.Salt,
		mem:    opts.Memory,
		noSync: opts.NoSync,
		now:    opts.Now,
	}

	// defaults
	cc.ttl = coalesce[time.Duration](opts.TTL, DefaultTTL)
	cc.codec = opts.Codec
	if cc.codec == nil {
		cc.codec = c.Msgpack[V]{}
	}
	cc.ext = coalesce[string](opts.Ext, c.ExtOf(cc.codec))
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if cc.now == nil {
		cc.now = time.Now
	}
	cc.gcEvery = coalesce[time.Duration](opts.GCInterval, cc.ttl/gcDivisor)
	cc.touchAfter = cc.ttl / gcDivisor
	if cc.gcEvery > 0 {
		cc.touchAfter = cc.gcEvery
	}

	if opts.BackgroundInterval > 0 {
		cc.bgCtx, cc.bgCancel = context.WithCancel(context.Background())
		cc.ticker = time.NewTicker(opts.BackgroundInterval)
		cc.closeWg.Add(1)
		go cc.sweepLoop()
	}
	return cc, nil
}

func validSalt(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("diskcache: salt is required")
	case s == "." || s == "..":
		return fmt.Errorf("diskcache: invalid salt %q", s)
	case strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0):
		return fmt.Errorf("diskcache: salt %q must be a single path element", s)
	}
	return nil
}

func (cc *Cache[V]) Dir() string        { return cc.dir }
func (cc *Cache[V]) Salt() string       { return cc.salt }
func (cc *Cache[V]) TTL() time.Duration { return cc.ttl }

// LastGC returns the start time of the most recent sweep by this instance,
// or the zero time if none ran yet.
func (cc *Cache[V]) LastGC() time.Time {
	n := cc.lastGC.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// ContentAddress returns the entry path for key. It does no I/O.
func (cc *Cache[V]) ContentAddress(key string) string {
	return cc.entryPath(util.Digest(cc.salt, key))
}

func (cc *Cache[V]) entryPath(digest string) string {
	return filepath.Join(cc.dir, cc.salt, digest+"."+cc.ext)
}

// Lookup returns the cached value for key, or runs produce, stores its result
// and returns it.
//
// Unreadable and corrupt entries are misses. Errors from produce are returned
// as is; failures to store the produced value are returned as *PopulateError.
// Lookup may run a GC sweep first when one is due.
func (cc *Cache[V]) Lookup(ctx context.Context, key string, produce Producer[V]) (V, error) {
	var zero V
	if cc.closed.Load() {
		return zero, ErrClosed
	}
	cc.maybeGC(ctx)

	digest := util.Digest(cc.salt, key)
	path := cc.entryPath(digest)

	if v, ok := cc.memGet(ctx, digest); ok {
		// the sweep judges idleness by the file, not the hot copy
		cc.touch(path)
		return v, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return zero, &PopulateError{Key: key, Path: path, Op: "mkdir", Err: err}
	}

	if v, raw, ok := cc.read(path); ok {
		cc.memSet(ctx, digest, raw)
		return v, nil
	}

	cc.log.Debug("cache miss", Fields{"key": key, "path": path})
	v, err := produce(ctx)
	if err != nil {
		return zero, err
	}
	raw, err := cc.write(key, path, v)
	if err != nil {
		return zero, err
	}
	cc.memSet(ctx, digest, raw)
	return v, nil
}

// read loads and decodes the entry at path. Any failure is a miss.
func (cc *Cache[V]) read(path string) (V, []byte, bool) {
	var zero V
	f, err := os.Open(path)
	if err != nil {
		return zero, nil, false
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return zero, nil, false
	}
	e, err := wire.Decode(raw)
	if err != nil {
		cc.corrupt(path, "envelope", err)
		return zero, nil, false
	}
	v, err := cc.codec.Decode(e.Payload)
	if err != nil {
		cc.corrupt(path, "decode", err)
		return zero, nil, false
	}
	cc.touch(path)
	return v, raw, true
}

// touch bumps the access time of a hit. relatime and noatime mounts would
// otherwise let a hot entry age out.
func (cc *Cache[V]) touch(path string) {
	st, err := statEntry(path)
	if err != nil {
		return
	}
	now := cc.now()
	if now.Sub(st.atime) < cc.touchAfter {
		return
	}
	mtime := st.mtime
	if accessIsModTime {
		mtime = now
	}
	if err := os.Chtimes(path, now, mtime); err != nil {
		cc.log.Debug("refresh access time failed", Fields{"path": path, "err": err})
	}
}

func (cc *Cache[V]) write(key, path string, v V) ([]byte, error) {
	payload, err := cc.codec.Encode(v)
	if err != nil {
		return nil, &PopulateError{Key: key, Path: path, Op: "encode", Err: err}
	}
	raw := wire.Encode(cc.now().UnixNano(), payload)

	tmp := cc.tempPath(path)
	err = cc.writeTemp(tmp, raw)
	if errors.Is(err, fs.ErrNotExist) {
		// a concurrent sweep pruned the directory while it was still empty
		if err = os.MkdirAll(filepath.Dir(path), dirPerm); err == nil {
			err = cc.writeTemp(tmp, raw)
		}
	}
	if err != nil {
		_ = os.Remove(tmp)
		return nil, &PopulateError{Key: key, Path: tmp, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, &PopulateError{Key: key, Path: path, Op: "rename", Err: err}
	}
	cc.log.Debug("cache entry stored", Fields{"key": key, "path": path, "bytes": len(raw)})
	return raw, nil
}

// tempPath is unique per writer: <digest>.<pid>-<uuid>.unfinished in the
// entry's directory, so the rename never crosses filesystems.
func (cc *Cache[V]) tempPath(path string) string {
	base := strings.TrimSuffix(path, "."+cc.ext)
	return fmt.Sprintf("%s.%d-%s%s", base, os.Getpid(), uuid.NewString(), unfinishedSuffix)
}

func (cc *Cache[V]) writeTemp(name string, b []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if !cc.noSync {
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func (cc *Cache[V]) corrupt(where, reason string, err error) {
	cc.hooks.EntryCorrupt(where, reason)
	cc.log.Warn("unusable cache entry, regenerating", Fields{"where": where, "reason": reason, "err": err})
}

func (cc *Cache[V]) memGet(ctx context.Context, digest string) (V, bool) {
	var zero V
	if cc.mem == nil {
		return zero, false
	}
	k := util.MemoryKey(cc.salt, digest)
	raw, ok, err := cc.mem.Get(ctx, k)
	if err != nil {
		cc.log.Debug("hot tier get failed", Fields{"key": k, "err": err})
		return zero, false
	}
	if !ok {
		return zero, false
	}
	e, err := wire.Decode(raw)
	if err != nil {
		_ = cc.mem.Del(ctx, k) // self-heal
		cc.corrupt(k, "memory_envelope", err)
		return zero, false
	}
	v, err := cc.codec.Decode(e.Payload)
	if err != nil {
		_ = cc.mem.Del(ctx, k)
		cc.corrupt(k, "memory_decode", err)
		return zero, false
	}
	return v, true
}

func (cc *Cache[V]) memSet(ctx context.Context, digest string, raw []byte) {
	if cc.mem == nil {
		return
	}
	k := util.MemoryKey(cc.salt, digest)
	ok, err := cc.mem.Set(ctx, k, raw, int64(len(raw)), cc.ttl)
	if err != nil {
		cc.log.Debug("hot tier set failed", Fields{"key": k, "err": err})
		return
	}
	if !ok {
		cc.hooks.MemorySetRejected(k)
	}
}

// Invalidate removes the entry for key from disk and from the hot tier.
// A missing entry is not an error.
func (cc *Cache[V]) Invalidate(ctx context.Context, key string) error {
	if cc.closed.Load() {
		return ErrClosed
	}
	digest := util.Digest(cc.salt, key)
	if cc.mem != nil {
		_ = cc.mem.Del(ctx, util.MemoryKey(cc.salt, digest))
	}
	if err := os.Remove(cc.entryPath(digest)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close stops background sweeps and closes the hot tier. Lookups after Close
// return ErrClosed. Safe to call more than once.
func (cc *Cache[V]) Close(ctx context.Context) error {
	var err error
	cc.closeOnce.Do(func() {
		cc.closed.Store(true)
		if cc.bgCancel != nil {
			cc.bgCancel()
			cc.closeWg.Wait()
			cc.ticker.Stop()
		}
		if cc.mem != nil {
			err = cc.mem.Close(ctx)
		}
	})
	return err
}

func (cc *Cache[V]) sweepLoop() {
	defer cc.closeWg.Done()
	for {
		select {
		case <-cc.ticker.C:
			cc.sweepIfIdle(cc.bgCtx, false)
		case <-cc.bgCtx.Done():
			return
		}
	}
}
