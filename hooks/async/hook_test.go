package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/unkn0wn-root/diskcache"
)

type recorder struct {
	mu     sync.Mutex
	events []string
	block  chan struct{}
}

func (r *recorder) add(s string) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.events = append(r.events, s)
	r.mu.Unlock()
}

func (r *recorder) EntryCorrupt(_, reason string)  { r.add("corrupt:" + reason) }
func (r *recorder) GCCompleted(diskcache.GCResult) { r.add("gc") }
func (r *recorder) GCError(path string, _ error)   { r.add("gcerr:" + path) }
func (r *recorder) MemorySetRejected(key string)   { r.add("rejected:" + key) }

func TestForwardsAllEvents(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 2, 16)
	h.EntryCorrupt("/c/v1/a.bin", "envelope")
	h.GCCompleted(diskcache.GCResult{FilesRemoved: 1})
	h.GCError("/c/v1", errors.New("io"))
	h.MemorySetRejected("diskcache:v1:a")
	h.Close()

	if len(rec.events) != 4 {
		t.Fatalf("expected 4 events, got %v", rec.events)
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}

func TestDropsWhenFullAndAfterClose(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	h := New(rec, 1, 1)

	// one event held by the worker, one in the queue, the rest dropped
	for i := 0; i < 10; i++ {
		h.GCCompleted(diskcache.GCResult{})
	}
	if h.Dropped() == 0 {
		t.Fatalf("expected drops with a blocked worker and a queue of 1")
	}
	close(rec.block)
	h.Close()

	before := h.Dropped()
	h.MemorySetRejected("late")
	if h.Dropped() != before+1 {
		t.Fatalf("expected event after Close to be dropped")
	}
	h.Close() // idempotent
}
