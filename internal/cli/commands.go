package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/diskcache"
)

func newGCCmd(a *app) *cobra.Command {
	var (
		force  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Delete entries not accessed within the TTL and prune empty directories",
		Long: `gc sweeps the whole cache root, including directories of other salts.
With --force every file is deleted regardless of its access time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCache(cmd.Context(), func(cc *diskcache.Cache[[]byte]) error {
				res, err := cc.GC(cmd.Context(), force)
				a.log.WithFields(logrus.Fields{
					"action":        "gc",
					"force":         force,
					"files_removed": res.FilesRemoved,
					"dirs_removed":  res.DirsRemoved,
					"bytes_removed": res.BytesRemoved,
				}).Info("sweep finished")
				if asJSON {
					if jerr := writeJSON(a.stdout, res); jerr != nil {
						return jerr
					}
				} else {
					fmt.Fprintf(a.stdout, "removed %d files (%s) and %d directories in %s\n",
						res.FilesRemoved, humanBytes(res.BytesRemoved), res.DirsRemoved, res.Duration)
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete every entry regardless of age")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report entry counts and sizes for the configured salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCache(cmd.Context(), func(cc *diskcache.Cache[[]byte]) error {
				st, err := cc.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(a.stdout, st)
				}
				tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "dir\t%s\n", st.Dir)
				fmt.Fprintf(tw, "salt\t%s\n", st.Salt)
				fmt.Fprintf(tw, "entries\t%d\n", st.Entries)
				fmt.Fprintf(tw, "expired\t%d\n", st.Expired)
				fmt.Fprintf(tw, "unfinished\t%d\n", st.Unfinished)
				fmt.Fprintf(tw, "size\t%s\n", humanBytes(st.TotalBytes))
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stats as JSON")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <key>...",
		Short: "Print the entry path of each key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCache(cmd.Context(), func(cc *diskcache.Cache[[]byte]) error {
				for _, k := range args {
					fmt.Fprintln(a.stdout, cc.ContentAddress(k))
				}
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
