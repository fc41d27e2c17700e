// Package config loads and validates wikihop configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/JakeFAU/wikihop/internal/wiki"
)

// EnvPrefix namespaces environment overrides, e.g. WIKIHOP_SEARCH_MAX_IN_FLIGHT.
const EnvPrefix = "WIKIHOP"

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Server   ServerConfig   `mapstructure:"server"`
	Progress ProgressConfig `mapstructure:"progress"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SearchConfig governs the graph search.
type SearchConfig struct {
	Target string `mapstructure:"target"`
	// TargetLabel is the human name printed when the target is found.
	TargetLabel    string `mapstructure:"target_label"`
	MaxInFlight    int64  `mapstructure:"max_in_flight"`
	SkipErrorPages bool   `mapstructure:"skip_error_pages"`
}

// HTTPConfig configures the page fetcher.
type HTTPConfig struct {
	UserAgent string `mapstructure:"user_agent"`
	// TimeoutSeconds of zero leaves requests unbounded.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ServerConfig controls the optional status server.
type ServerConfig struct {
	// Listen is the bind address; empty disables the server.
	Listen string `mapstructure:"listen"`
}

// ProgressConfig tunes the progress event hub.
type ProgressConfig struct {
	BufferSize     int `mapstructure:"buffer_size"`
	MaxBatchEvents int `mapstructure:"max_batch_events"`
	MaxBatchWaitMs int `mapstructure:"max_batch_wait_ms"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// flagKeys maps CLI flag names onto the config keys they override.
var flagKeys = map[string]string{
	"target":        "search.target",
	"max-in-flight": "search.max_in_flight",
	"listen":        "server.listen",
	"development":   "logging.development",
}

// Load builds a Config from defaults, an optional file, the environment, and
// any changed flags in flags (which may be nil).
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.target", wiki.DefaultTarget)
	v.SetDefault("search.target_label", "Hitler")
	v.SetDefault("search.max_in_flight", 0)
	v.SetDefault("search.skip_error_pages", false)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.timeout_seconds", 0)
	v.SetDefault("server.listen", "")
	v.SetDefault("progress.buffer_size", 4096)
	v.SetDefault("progress.max_batch_events", 256)
	v.SetDefault("progress.max_batch_wait_ms", 250)
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.Search.Target, wiki.ArticlePrefix) {
		return fmt.Errorf("search.target must start with %s", wiki.ArticlePrefix)
	}
	if c.Search.TargetLabel == "" {
		return fmt.Errorf("search.target_label must not be empty")
	}
	if c.Search.MaxInFlight < 0 {
		return fmt.Errorf("search.max_in_flight must be >= 0")
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("http.timeout_seconds must be >= 0")
	}
	if c.Progress.BufferSize <= 0 {
		return fmt.Errorf("progress.buffer_size must be > 0")
	}
	if c.Progress.MaxBatchEvents <= 0 {
		return fmt.Errorf("progress.max_batch_events must be > 0")
	}
	if c.Progress.MaxBatchWaitMs <= 0 {
		return fmt.Errorf("progress.max_batch_wait_ms must be > 0")
	}
	return nil
}

// RequestTimeout converts the HTTP timeout into a duration; zero means none.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// BatchWait converts the progress batch window into a duration.
func (c Config) BatchWait() time.Duration {
	return time.Duration(c.Progress.MaxBatchWaitMs) * time.Millisecond
}
