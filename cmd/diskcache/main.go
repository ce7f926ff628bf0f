// Command diskcache maintains a cache directory written by the diskcache
// package.
//
// Usage:
//
//	diskcache gc                       # sweep entries idle for longer than --ttl
//	diskcache gc --force               # empty the cache
//	diskcache stats --json             # entry counts for --salt
//	diskcache path <key>...            # where each key is stored
//	diskcache fetch <key> <url>        # memoize an HTTP download
package main

import (
	"os"

	"github.com/unkn0wn-root/diskcache/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
