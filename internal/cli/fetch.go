package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/diskcache"
)

// maxBody bounds a single memoized download.
const maxBody = 512 << 20

func newFetchCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "fetch <key> <url>",
		Short: "Return the cached body for key, downloading url on a miss",
		Long: `fetch memoizes an HTTP GET under key. A non-2xx response is an error
and is not cached.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, url := args[0], args[1]
			return a.withCache(cmd.Context(), func(cc *diskcache.Cache[[]byte]) error {
				fetched := false
				start := time.Now()
				body, err := cc.Lookup(cmd.Context(), key, func(ctx context.Context) ([]byte, error) {
					fetched = true
					return a.download(ctx, url)
				})
				if err != nil {
					return err
				}
				a.log.WithFields(logrus.Fields{
					"action": "fetch",
					"key":    key,
					"hit":    !fetched,
					"bytes":  len(body),
					"took":   time.Since(start),
				}).Info("fetch complete")
				return a.emit(out, body)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the body to this file instead of stdout")
	cmd.Flags().Duration("timeout", 30*time.Second, "download timeout")
	return cmd
}

func (a *app) download(ctx context.Context, url string) ([]byte, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, maxBody)
	}
	return body, nil
}

func (a *app) emit(path string, body []byte) error {
	if path == "" {
		_, err := a.stdout.Write(body)
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
