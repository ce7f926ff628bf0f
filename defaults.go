package diskcache

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultTTL = 7 * 24 * time.Hour

	// opportunistic sweeps run at most once per TTL/gcDivisor
	gcDivisor = 10

	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644

	unfinishedSuffix = ".unfinished"
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// expandHome resolves a leading "~" or "~/" against the user's home directory.
// "~user" forms are left alone.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}
