package diskcache

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/diskcache/internal/util"
)

// Stats describes the entries under this cache's salt directory.
type Stats struct {
	Dir        string `json:"dir"`
	Salt       string `json:"salt"`
	Entries    int    `json:"entries"`
	Unfinished int    `json:"unfinished"`
	Expired    int    `json:"expired"` // entries the next sweep would remove
	TotalBytes int64  `json:"totalBytes"`
}

// Stats walks <dir>/<salt>. Files that vanish mid-walk are skipped; a
// missing salt directory yields empty stats.
func (cc *Cache[V]) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Dir: cc.dir, Salt: cc.salt}
	root := filepath.Join(cc.dir, cc.salt)
	cutoff := cc.now().Add(-cc.ttl)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if ignorable(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		st, err := statEntry(path)
		if err != nil {
			if ignorable(err) {
				return nil
			}
			return err
		}
		stats.TotalBytes += st.size

		name := d.Name()
		if _, _, ok := util.SplitEntryName(name); !ok {
			return nil
		}
		switch {
		case strings.HasSuffix(name, unfinishedSuffix):
			stats.Unfinished++
		case strings.HasSuffix(name, "."+cc.ext):
			stats.Entries++
			if st.atime.Before(cutoff) {
				stats.Expired++
			}
		}
		return nil
	})
	return stats, err
}
