//go:build windows

package diskcache

import (
	"errors"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

const accessIsModTime = false

func statEntry(path string) (entryStat, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return entryStat{}, err
	}
	st := entryStat{size: fi.Size(), atime: fi.ModTime(), mtime: fi.ModTime()}
	if d, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		st.atime = time.Unix(0, d.LastAccessTime.Nanoseconds())
	}
	return st, nil
}

func dirNotEmpty(_ string, err error) bool {
	return errors.Is(err, windows.ERROR_DIR_NOT_EMPTY)
}
