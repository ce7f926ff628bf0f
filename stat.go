package diskcache

import "time"

// entryStat is the part of a file's metadata the cache looks at.
type entryStat struct {
	size  int64
	atime time.Time
	mtime time.Time
}
