package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/diskcache"
	"github.com/unkn0wn-root/diskcache/codec"
	logrusadapter "github.com/unkn0wn-root/diskcache/log/logrus"
)

// Version/Commit can be injected at build time via -ldflags.
var (
	Version = "0.1.0"
	Commit  = "dev"
)

const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configFile string
	cfg        Config
	log        *logrus.Logger

	stdout io.Writer
	stderr io.Writer
}

// Run executes the CLI and returns the process exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "diskcache: %v\n", err)
		return ExitRuntimeError
	}
	return ExitSuccess
}

// NewRootCmd builds the command tree writing to the given streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "diskcache",
		Short: "Inspect and maintain a content-addressed disk cache",
		Long: `diskcache operates on a cache directory shared by programs using the
diskcache Go package: sweep idle entries, report usage, resolve entry
paths and memoize HTTP downloads.

Every flag can also be set as a DISKCACHE_* environment variable
(e.g. DISKCACHE_LOG_LEVEL) or in a config file passed with --config.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml, toml or json)")
	pf.String("dir", "~/.cache/diskcache", "cache root directory")
	pf.String("salt", "v1", "version salt; entries live under <dir>/<salt>")
	pf.Duration("ttl", diskcache.DefaultTTL, "idle lifetime of an entry")
	pf.String("ext", "", "entry file extension (default bin)")
	pf.String("memory", "", "hot tier in front of the disk: ristretto, bigcache or redis")
	pf.Int("memory-mb", 64, "in-process hot tier budget in MiB")
	pf.String("redis-addr", "127.0.0.1:6379", "redis address for --memory=redis")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text or json)")
	pf.String("log-file", "", "log to a rotating file instead of stderr")

	root.AddCommand(
		newGCCmd(a),
		newStatsCmd(a),
		newPathCmd(a),
		newFetchCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, a.stderr)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	return nil
}

// withCache opens the cache, runs fn and closes the cache again.
func (a *app) withCache(ctx context.Context, fn func(*diskcache.Cache[[]byte]) error) (err error) {
	mem, err := newMemory(ctx, a.cfg)
	if err != nil {
		return err
	}
	cc, err := diskcache.New[[]byte](diskcache.Options[[]byte]{
		Dir:    a.cfg.Dir,
		Salt:   a.cfg.Salt,
		TTL:    a.cfg.TTL,
		Codec:  codec.Bytes{},
		Ext:    a.cfg.Ext,
		Memory: mem,
		Logger: logrusadapter.New(a.log),
	})
	if err != nil {
		if mem != nil {
			_ = mem.Close(ctx)
		}
		return err
	}
	defer func() {
		if cerr := cc.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = fmt.Errorf("close cache: %w", cerr)
		}
	}()

	a.log.WithFields(logrus.Fields{
		"dir":    cc.Dir(),
		"salt":   cc.Salt(),
		"ttl":    cc.TTL(),
		"memory": a.cfg.Memory,
	}).Debug("cache opened")
	return fn(cc)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the diskcache version",
		Args:  cobra.NoArgs,
		// no config or logger needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "diskcache %s (%s)\n", Version, Commit)
		},
	}
}
