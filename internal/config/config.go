package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"printfind/internal/model"
)

// DefaultUserAgent is sent on every catalog request. Catalogs block default
// client identifiers, so this must look like a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the full application configuration.
type Config struct {
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SearchConfig controls fan-out and merge limits.
type SearchConfig struct {
	PerSourceLimit int      `yaml:"per_source_limit" mapstructure:"per_source_limit"`
	MaxResults     int      `yaml:"max_results" mapstructure:"max_results"`
	Sources        []string `yaml:"sources" mapstructure:"sources"`
}

// FetchConfig configures outbound catalog requests.
type FetchConfig struct {
	UserAgent     string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes  int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Render        bool    `yaml:"render" mapstructure:"render"`
	ProxyURL      string  `yaml:"proxy_url" mapstructure:"proxy_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr               string `yaml:"addr" mapstructure:"addr"`
	RequestTimeoutSecs int    `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional file and the environment.
// An empty path searches for printfind.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("printfind")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PRINTFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	all := make([]string, 0, len(model.Sources))
	for _, s := range model.Sources {
		all = append(all, s.String())
	}

	v.SetDefault("search.per_source_limit", 5)
	v.SetDefault("search.max_results", 20)
	v.SetDefault("search.sources", all)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.max_body_bytes", 4<<20)
	v.SetDefault("fetch.rate_per_second", 0)
	v.SetDefault("fetch.render", false)
	v.SetDefault("fetch.proxy_url", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout_secs", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks limits and source names.
func (c *Config) Validate() error {
	if c.Search.PerSourceLimit <= 0 {
		return eris.Errorf("config: search.per_source_limit must be positive, got %d", c.Search.PerSourceLimit)
	}
	if c.Search.MaxResults <= 0 {
		return eris.Errorf("config: search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if len(c.Search.Sources) == 0 {
		return eris.New("config: search.sources is empty")
	}
	if _, err := model.ParseSources(c.Search.Sources); err != nil {
		return eris.Wrap(err, "config: search.sources")
	}
	if c.Fetch.RatePerSecond < 0 {
		return eris.New("config: fetch.rate_per_second must not be negative")
	}
	return nil
}

// EnabledSources returns the configured sources in canonical order.
// Call Validate first.
func (c *Config) EnabledSources() []model.Source {
	srcs, err := model.ParseSources(c.Search.Sources)
	if err != nil {
		return nil
	}
	return srcs
}

// InitLogger initializes the global zap logger. Logs go to stderr so that
// search output on stdout stays machine readable.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// ProxyFromEnv returns the proxy to use for the browser fetcher when none is
// configured.
func ProxyFromEnv() string {
	return os.Getenv("PRINTFIND_PROXY")
}
