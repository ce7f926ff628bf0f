// Package asynchook moves diskcache hook calls off the lookup and sweep
// paths onto a small worker pool.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{CorruptEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := diskcache.New[Artifact](diskcache.Options[Artifact]{
//	    Dir:   "~/.cache/builds",
//	    Salt:  "v3",
//	    Hooks: hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/diskcache"
)

// Hooks forwards events to inner from worker goroutines. Events that do not
// fit in the queue are dropped and counted.
type Hooks struct {
	inner   diskcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against send on closed q
	closed  bool
	dropped atomic.Uint64
}

var _ diskcache.Hooks = (*Hooks)(nil)

func New(inner diskcache.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = diskcache.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are
// dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) EntryCorrupt(where, reason string) {
	h.try(func() { h.inner.EntryCorrupt(where, reason) })
}
func (h *Hooks) GCCompleted(r diskcache.GCResult) { h.try(func() { h.inner.GCCompleted(r) }) }
func (h *Hooks) GCError(path string, err error)   { h.try(func() { h.inner.GCError(path, err) }) }
func (h *Hooks) MemorySetRejected(key string)     { h.try(func() { h.inner.MemorySetRejected(key) }) }
