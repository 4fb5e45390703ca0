// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Crawl   CrawlConfig   `mapstructure:"crawl"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CrawlConfig governs category traversal behavior.
type CrawlConfig struct {
	Languages           []string      `mapstructure:"languages"`
	Categories          []string      `mapstructure:"categories"`
	MaxPagesPerCategory int           `mapstructure:"max_pages_per_category"`
	Depth               int           `mapstructure:"depth"`
	PageSize            int           `mapstructure:"page_size"`
	PolitenessDelay     time.Duration `mapstructure:"politeness_delay"`
}

// HTTPConfig configures the MediaWiki API client and its retry behavior.
type HTTPConfig struct {
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// OutputConfig sets the destination of the JSONL corpus.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// MetricsConfig controls the optional observability endpoint.
// An empty address disables the HTTP server entirely.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WIKICRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine; defaults and env vars carry the run.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
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
	v.SetDefault("crawl.languages", []string{"en", "sr", "zh"})
	v.SetDefault("crawl.categories", []string{"Physics", "Mathematics", "Computer_science"})
	v.SetDefault("crawl.max_pages_per_category", 60)
	v.SetDefault("crawl.depth", 2)
	v.SetDefault("crawl.page_size", 500)
	v.SetDefault("crawl.politeness_delay", "500ms")
	v.SetDefault("http.user_agent", "wikicrawl/1.0 (https://github.com/corpuskit/wikicrawl; ops@corpuskit.dev)")
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.retry_delay", "5s")
	v.SetDefault("output.path", "wiki_corpus.jsonl")
	v.SetDefault("logging.development", true)
	v.SetDefault("metrics.addr", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Crawl.Languages) == 0 {
		return fmt.Errorf("crawl.languages must include at least one language code")
	}
	if len(c.Crawl.Categories) == 0 {
		return fmt.Errorf("crawl.categories must include at least one category")
	}
	if c.Crawl.MaxPagesPerCategory <= 0 {
		return fmt.Errorf("crawl.max_pages_per_category must be > 0")
	}
	if c.Crawl.Depth < 0 {
		return fmt.Errorf("crawl.depth must be >= 0")
	}
	if c.Crawl.PageSize <= 0 || c.Crawl.PageSize > 500 {
		return fmt.Errorf("crawl.page_size must be in 1..500")
	}
	if c.Crawl.PolitenessDelay < 0 {
		return fmt.Errorf("crawl.politeness_delay must be >= 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.HTTP.MaxRetries <= 0 {
		return fmt.Errorf("http.max_retries must be > 0")
	}
	if c.HTTP.RetryDelay < 0 {
		return fmt.Errorf("http.retry_delay must be >= 0")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	return nil
}
