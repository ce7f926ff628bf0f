package diskcache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unkn0wn-root/diskcache/internal/util"
)

// GCResult summarizes one sweep.
type GCResult struct {
	Start        time.Time     `json:"start"`
	Duration     time.Duration `json:"duration"`
	Force        bool          `json:"force"`
	FilesRemoved int           `json:"filesRemoved"`
	DirsRemoved  int           `json:"dirsRemoved"`
	BytesRemoved int64         `json:"bytesRemoved"`
}

// GC walks the whole cache root (every salt) and deletes each file whose
// access time is older than the TTL, or every file when force is set.
// Directories left empty are removed afterwards, deepest first; the root
// itself is kept.
//
// Other processes may be reading, writing and sweeping the same tree, so
// not-exist, permission and not-empty errors are skipped silently. Anything
// else is reported to Hooks.GCError and returned joined once the sweep is
// done. The sweep start time is recorded as the last GC time either way.
func (cc *Cache[V]) GC(ctx context.Context, force bool) (GCResult, error) {
	if cc.closed.Load() {
		return GCResult{}, ErrClosed
	}
	start := cc.now()
	defer cc.lastGC.Store(start.UnixNano())

	res := GCResult{Start: start, Force: force}
	cutoff := start.Add(-cc.ttl)

	var (
		dirs []string
		errs []error
	)
	report := func(path string, err error) {
		errs = append(errs, err)
		cc.hooks.GCError(path, err)
		cc.log.Warn("gc: unexpected filesystem error", Fields{"path": path, "err": err})
	}

	walkErr := filepath.WalkDir(cc.dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if !ignorable(err) {
				report(path, err)
			}
			return nil
		}
		if d.IsDir() {
			if path != cc.dir {
				dirs = append(dirs, path)
			}
			return nil
		}

		st, err := statEntry(path)
		if err != nil {
			if !ignorable(err) {
				report(path, err)
			}
			return nil
		}
		if !force && !st.atime.Before(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			if !ignorable(err) {
				report(path, err)
			}
			return nil
		}
		res.FilesRemoved++
		res.BytesRemoved += st.size
		cc.forgetMemory(ctx, path)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	// WalkDir lists parents before children; reverse for bottom-up pruning.
	for i := len(dirs) - 1; i >= 0 && ctx.Err() == nil; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			if !ignorable(err) && !dirNotEmpty(dirs[i], err) {
				report(dirs[i], err)
			}
			continue
		}
		res.DirsRemoved++
	}

	res.Duration = cc.now().Sub(start)
	cc.hooks.GCCompleted(res)
	cc.log.Debug("gc sweep finished", Fields{
		"force":         force,
		"files_removed": res.FilesRemoved,
		"dirs_removed":  res.DirsRemoved,
		"bytes_removed": res.BytesRemoved,
		"took":          res.Duration,
	})
	return res, errors.Join(errs...)
}

// maybeGC runs a sweep inline when one is due. Callers that find a sweep
// already running skip it instead of waiting.
func (cc *Cache[V]) maybeGC(ctx context.Context) {
	if cc.gcEvery < 0 || !cc.gcDue() {
		return
	}
	cc.sweepIfIdle(ctx, true)
}

func (cc *Cache[V]) gcDue() bool {
	last := cc.lastGC.Load()
	return last == 0 || cc.now().Sub(time.Unix(0, last)) >= cc.gcEvery
}

// sweepIfIdle runs a sweep unless one is in progress. With onlyIfDue the
// schedule is checked again once the sweep slot is held, since a sweep that
// just finished has moved lastGC.
func (cc *Cache[V]) sweepIfIdle(ctx context.Context, onlyIfDue bool) {
	if !cc.sweeping.CompareAndSwap(false, true) {
		return
	}
	defer cc.sweeping.Store(false)
	if onlyIfDue && !cc.gcDue() {
		return
	}
	if _, err := cc.GC(ctx, false); err != nil {
		cc.log.Warn("gc sweep incomplete", Fields{"dir": cc.dir, "err": err})
	}
}

// forgetMemory drops the hot-tier copy of a deleted entry file.
func (cc *Cache[V]) forgetMemory(ctx context.Context, path string) {
	if cc.mem == nil || strings.HasSuffix(path, unfinishedSuffix) {
		return
	}
	rel, err := filepath.Rel(cc.dir, path)
	if err != nil {
		return
	}
	salt, name := filepath.Split(rel)
	salt = filepath.Clean(salt)
	if salt == "." || strings.ContainsRune(salt, filepath.Separator) {
		return
	}
	digest, _, ok := util.SplitEntryName(name)
	if !ok {
		return
	}
	_ = cc.mem.Del(ctx, util.MemoryKey(salt, digest))
}

// ignorable reports the errors a sweep expects from racing with other
// readers, writers and sweepers.
func ignorable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
