// Package sloghooks reports diskcache hook events through log/slog.
package sloghooks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/diskcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	CorruptEvery  uint64
	RejectedEvery uint64
	// Log every completed sweep at Info. Off: only sweeps that removed
	// something are logged, at Debug.
	VerboseGC bool
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	corruptCtr  atomic.Uint64
	rejectedCtr atomic.Uint64
}

var _ diskcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryCorrupt(where, reason string) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Warn("diskcache.entry_corrupt",
		"where", where,
		"reason", reason)
}

func (h *Hooks) GCCompleted(r diskcache.GCResult) {
	if h.l == nil {
		return
	}
	lvl := slog.LevelDebug
	switch {
	case h.opts.VerboseGC:
		lvl = slog.LevelInfo
	case r.FilesRemoved == 0 && r.DirsRemoved == 0:
		return
	}
	h.l.Log(context.Background(), lvl, "diskcache.gc_completed",
		"force", r.Force,
		"files_removed", r.FilesRemoved,
		"dirs_removed", r.DirsRemoved,
		"bytes_removed", r.BytesRemoved,
		"took", r.Duration)
}

func (h *Hooks) GCError(path string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("diskcache.gc_error",
		"path", path,
		"err", err)
}

func (h *Hooks) MemorySetRejected(key string) {
	if h.l == nil || !sample(h.opts.RejectedEvery, &h.rejectedCtr) {
		return
	}
	h.l.Debug("diskcache.memory_set_rejected",
		"key", key)
}
