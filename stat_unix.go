//go:build linux || darwin || freebsd || netbsd || openbsd

package diskcache

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

const accessIsModTime = false

func statEntry(path string) (entryStat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return entryStat{}, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}
	return entryStat{
		size:  st.Size,
		atime: time.Unix(st.Atim.Unix()),
		mtime: time.Unix(st.Mtim.Unix()),
	}, nil
}

// dirNotEmpty reports whether err is rmdir refusing a directory that still
// has entries. POSIX allows either errno.
func dirNotEmpty(_ string, err error) bool {
	return errors.Is(err, unix.ENOTEMPTY) || errors.Is(err, unix.EEXIST)
}
