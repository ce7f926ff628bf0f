package diskcache

import (
	"errors"
	"fmt"
)

var (
	ErrClosed = errors.New("diskcache: cache is closed")
)

// PopulateError reports a failure to store a freshly produced value. The
// value is not returned to the caller in that case: a failed population is
// a failed lookup. Producer errors are never wrapped in PopulateError.
//
// Op ∈ {"mkdir", "encode", "write", "rename"}
type PopulateError struct {
	Key  string
	Path string
	Op   string
	Err  error
}

func (e *PopulateError) Error() string {
	switch e.Op {
	case "mkdir":
		return fmt.Sprintf("diskcache: lookup %q: create cache directory: %v", e.Key, e.Err)
	case "encode":
		return fmt.Sprintf("diskcache: lookup %q: encode value: %v", e.Key, e.Err)
	case "write", "rename":
		return fmt.Sprintf("diskcache: lookup %q: %s %s: %v", e.Key, e.Op, e.Path, e.Err)
	default:
		return fmt.Sprintf("diskcache: lookup %q: %v", e.Key, e.Err)
	}
}

func (e *PopulateError) Unwrap() error { return e.Err }
