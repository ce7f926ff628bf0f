package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/diskcache"
)

const envPrefix = "DISKCACHE"

// Config is the resolved CLI configuration. Precedence: flags, then
// DISKCACHE_* environment variables, then the config file, then defaults.
type Config struct {
	Dir  string        `mapstructure:"dir"`
	Salt string        `mapstructure:"salt"`
	TTL  time.Duration `mapstructure:"ttl"`
	Ext  string        `mapstructure:"ext"`

	Memory    string `mapstructure:"memory"` // "", "ristretto", "bigcache" or "redis"
	MemoryMB  int    `mapstructure:"memory-mb"`
	RedisAddr string `mapstructure:"redis-addr"`

	LogLevel      string `mapstructure:"log-level"`
	LogFormat     string `mapstructure:"log-format"` // "text" or "json"
	LogFile       string `mapstructure:"log-file"`
	LogMaxSizeMB  int    `mapstructure:"log-max-size"`
	LogMaxBackups int    `mapstructure:"log-max-backups"`
	LogCompress   bool   `mapstructure:"log-compress"`

	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dir", "~/.cache/diskcache")
	v.SetDefault("salt", "v1")
	v.SetDefault("ttl", diskcache.DefaultTTL)
	v.SetDefault("ext", "")
	v.SetDefault("memory", "")
	v.SetDefault("memory-mb", 64)
	v.SetDefault("redis-addr", "127.0.0.1:6379")
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
	v.SetDefault("log-file", "")
	v.SetDefault("log-max-size", 100)
	v.SetDefault("log-max-backups", 10)
	v.SetDefault("log-compress", true)
	v.SetDefault("timeout", 30*time.Second)
}

// loadConfig merges flags, environment and the optional config file.
func loadConfig(flags *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Memory {
	case "", "ristretto", "bigcache", "redis":
	default:
		return fmt.Errorf("unknown memory tier %q (want ristretto, bigcache or redis)", c.Memory)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Memory != "" && c.Memory != "redis" && c.MemoryMB <= 0 {
		return fmt.Errorf("memory-mb must be positive")
	}
	return nil
}
