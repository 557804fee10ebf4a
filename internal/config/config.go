// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads yellowsnake settings from config.yaml, the
// environment and built-in defaults, and sets up the global logger.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentberlin/yellowsnake"
	"github.com/agentberlin/yellowsnake/extract"
	"github.com/agentberlin/yellowsnake/paginate"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes environment overrides, e.g. YELLOWSNAKE_CRAWL_MAX_PAGES.
const EnvPrefix = "YELLOWSNAKE"

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Site       SiteConfig       `yaml:"site" mapstructure:"site"`
	Crawl      CrawlConfig      `yaml:"crawl" mapstructure:"crawl"`
	Extract    ExtractConfig    `yaml:"extract" mapstructure:"extract"`
	Categories []CategoryConfig `yaml:"categories" mapstructure:"categories"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	MCP        MCPConfig        `yaml:"mcp" mapstructure:"mcp"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SiteConfig describes the directory being scraped.
type SiteConfig struct {
	BaseURL     string           `yaml:"base_url" mapstructure:"base_url"`
	DetailPath  string           `yaml:"detail_path" mapstructure:"detail_path"`
	SelfPaths   []string         `yaml:"self_paths" mapstructure:"self_paths"`
	SelfHandles []string         `yaml:"self_handles" mapstructure:"self_handles"`
	Paging      paginate.Schemes `yaml:"paging" mapstructure:"paging"`
}

// CrawlConfig configures fetching and the crawl limits.
type CrawlConfig struct {
	MaxPages         int           `yaml:"max_pages" mapstructure:"max_pages"`
	MaxCompanies     int           `yaml:"max_companies" mapstructure:"max_companies"`
	Delay            time.Duration `yaml:"delay" mapstructure:"delay"`
	RandomDelay      time.Duration `yaml:"random_delay" mapstructure:"random_delay"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent        string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodySize      int           `yaml:"max_body_size" mapstructure:"max_body_size"`
	RespectRobots    bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	ParseErrorStatus bool          `yaml:"parse_error_status" mapstructure:"parse_error_status"`
	TraceTimings     bool          `yaml:"trace_timings" mapstructure:"trace_timings"`
	Render           bool          `yaml:"render" mapstructure:"render"`
}

// ExtractConfig configures field extraction.
type ExtractConfig struct {
	FalsePositiveLabels []string `yaml:"false_positive_labels" mapstructure:"false_positive_labels"`
	PhoneRegion         string   `yaml:"phone_region" mapstructure:"phone_region"`
	PhoneCountryCode    string   `yaml:"phone_country_code" mapstructure:"phone_country_code"`
	MaxPhones           int      `yaml:"max_phones" mapstructure:"max_phones"`
}

// CategoryConfig is one catalog entry.
type CategoryConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	URL  string `yaml:"url" mapstructure:"url"`
}

// StoreConfig configures the run history database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// OutputConfig configures CSV output locations.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	AllFile string `yaml:"all_file" mapstructure:"all_file"`
}

// ServerConfig configures the REST server.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultCategories are the directory categories scraped out of the box.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name: "real_estate",
			URL:  "https://www.spyur.am/am/yellow_pages/?type=bd&yp_cat1=&yp_cat2=l2.3.5&yp_cat3=&search=Search",
		},
		{
			Name: "ԱՌԵՎՏՐԱՅԻՆ ԳՈՐԾԱՐՔՆԵՐ, ՅՈՒՐԱՀԱՏՈՒԿ ԱՌԵՎՏՐԱՅԻՆ ՀԱՐԹԱԿՆԵՐ, ՕԲՅԵԿՏՆԵՐ",
			URL:  "https://www.spyur.am/am/yellow_pages/?type=bd&yp_cat1=&yp_cat2=l2.3.6&yp_cat3=&search=Search",
		},
	}
}

func setDefaults(v *viper.Viper) {
	ext := extract.DefaultConfig()
	schemes := paginate.DefaultSchemes()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("site.base_url", "https://www.spyur.am")
	v.SetDefault("site.detail_path", "/companies/")
	v.SetDefault("site.self_paths", ext.SelfPaths)
	v.SetDefault("site.self_handles", ext.SelfHandles)
	v.SetDefault("site.paging.primary", schemes.Primary)
	v.SetDefault("site.paging.legacy", schemes.Legacy)
	v.SetDefault("site.paging.query", schemes.Query)

	v.SetDefault("crawl.max_pages", 5)
	v.SetDefault("crawl.max_companies", 1000)
	v.SetDefault("crawl.delay", time.Second)
	v.SetDefault("crawl.random_delay", time.Duration(0))
	v.SetDefault("crawl.timeout", 20*time.Second)
	v.SetDefault("crawl.user_agent", yellowsnake.DefaultUserAgent)
	v.SetDefault("crawl.max_body_size", 10*1024*1024)
	v.SetDefault("crawl.respect_robots", true)
	v.SetDefault("crawl.parse_error_status", false)
	v.SetDefault("crawl.trace_timings", false)
	v.SetDefault("crawl.render", false)

	v.SetDefault("extract.false_positive_labels", ext.FalsePositiveLabels)
	v.SetDefault("extract.phone_region", ext.PhoneRegion)
	v.SetDefault("extract.phone_country_code", ext.PhoneCountryCode)
	v.SetDefault("extract.max_phones", ext.MaxPhones)

	categories := make([]map[string]any, 0, 2)
	for _, c := range DefaultCategories() {
		categories = append(categories, map[string]any{"name": c.Name, "url": c.URL})
	}
	v.SetDefault("categories", categories)

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", "~/.yellowsnake/yellowsnake.db")
	v.SetDefault("output.dir", "~/Documents")
	v.SetDefault("output.all_file", "spyur_all_categories.csv")
	v.SetDefault("server.addr", ":8420")
	v.SetDefault("mcp.addr", ":8421")
}

// Load reads configuration from file and environment. config.yaml is
// looked up in the working directory, then in ~/.yellowsnake; a missing
// file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.yellowsnake")

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	cfg.Store.Path = ExpandHome(cfg.Store.Path)
	cfg.Output.Dir = ExpandHome(cfg.Output.Dir)
	return &cfg, nil
}

// Validate checks the settings a run depends on.
func (c *Config) Validate() error {
	if c.Crawl.MaxPages < 1 {
		return eris.Errorf("config: crawl.max_pages must be at least 1, got %d", c.Crawl.MaxPages)
	}
	if c.Crawl.MaxCompanies < 1 {
		return eris.Errorf("config: crawl.max_companies must be at least 1, got %d", c.Crawl.MaxCompanies)
	}
	if c.Crawl.Delay < 0 || c.Crawl.RandomDelay < 0 {
		return eris.New("config: crawl delays must not be negative")
	}
	if len(c.Categories) == 0 {
		return eris.New("config: at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return eris.Errorf("config: categories[%d] has no name", i)
		}
		if !yellowsnake.IsAbsoluteHTTP(cat.URL) {
			return eris.Errorf("config: category %q needs an http(s) url", cat.Name)
		}
		if seen[cat.Name] {
			return eris.Errorf("config: category %q is listed twice", cat.Name)
		}
		seen[cat.Name] = true
	}
	return nil
}

// FetcherConfig maps the crawl settings onto the HTTP fetcher.
func (c *Config) FetcherConfig() yellowsnake.FetcherConfig {
	return yellowsnake.FetcherConfig{
		UserAgent:        c.Crawl.UserAgent,
		Timeout:          c.Crawl.Timeout,
		MaxBodySize:      c.Crawl.MaxBodySize,
		Delay:            c.Crawl.Delay,
		RandomDelay:      c.Crawl.RandomDelay,
		RespectRobots:    c.Crawl.RespectRobots,
		ParseErrorStatus: c.Crawl.ParseErrorStatus,
		TraceTimings:     c.Crawl.TraceTimings,
	}
}

// RenderConfig maps the crawl settings onto the headless renderer.
func (c *Config) RenderConfig() yellowsnake.RenderConfig {
	return yellowsnake.RenderConfig{
		UserAgent:        c.Crawl.UserAgent,
		Timeout:          c.Crawl.Timeout,
		Delay:            c.Crawl.Delay,
		RandomDelay:      c.Crawl.RandomDelay,
		ParseErrorStatus: c.Crawl.ParseErrorStatus,
	}
}

// ExtractorConfig maps the site and extract settings onto the extractor.
func (c *Config) ExtractorConfig() extract.Config {
	return extract.Config{
		SiteDomain:          yellowsnake.Hostname(c.Site.BaseURL),
		SelfPaths:           c.Site.SelfPaths,
		SelfHandles:         c.Site.SelfHandles,
		FalsePositiveLabels: c.Extract.FalsePositiveLabels,
		PhoneRegion:         c.Extract.PhoneRegion,
		PhoneCountryCode:    c.Extract.PhoneCountryCode,
		MaxPhones:           c.Extract.MaxPhones,
	}
}

// PaginateConfig maps the site settings onto the pagination resolver.
func (c *Config) PaginateConfig() paginate.Config {
	urls := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		urls = append(urls, cat.URL)
	}
	return paginate.Config{
		Schemes:            c.Site.Paging,
		DetailPathFragment: c.Site.DetailPath,
		CategoryURLs:       urls,
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
