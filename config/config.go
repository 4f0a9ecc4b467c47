package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Configuration
//
// Settings are layered: built-in defaults, then an optional config file
// (.yaml/.yml or .toml), then COMPAREAID_* environment variables. The
// environment always wins so a deployment can override a checked-in file.
// ============================================================================

// Config holds the runtime settings of the web server, the terminal UI and
// the catalog refresh worker.
type Config struct {
	Address            string        // Listen address of the web server (COMPAREAID_ADDRESS)
	BackendURL         string        // Base URL the search UI calls for GET /search (COMPAREAID_BACKEND_URL)
	DBPath             string        // DuckDB file; empty keeps the catalog in memory (COMPAREAID_DB_PATH)
	LogLevel           string        // debug, info, warn, error (COMPAREAID_LOG_LEVEL)
	SearchTimeout      time.Duration // Per search request; 0 waits forever (COMPAREAID_SEARCH_TIMEOUT)
	RateLimitPerMinute int           // Per client on /search and /api; 0 disables (COMPAREAID_RATE_LIMIT)
	CacheTTL           time.Duration // Lifetime of cached search results (COMPAREAID_CACHE_TTL)
	CacheSize          int           // Max cached queries (COMPAREAID_CACHE_SIZE)
	RefreshEnabled     bool          // Run the catalog refresh worker (COMPAREAID_REFRESH_ENABLED)
	RefreshInterval    time.Duration // Between catalog refreshes (COMPAREAID_REFRESH_INTERVAL)
	Timezone           string        // Zone for "last updated" dates (COMPAREAID_TIMEZONE)
	SessionCapacity    int           // Browser sessions kept in memory (COMPAREAID_SESSION_CAPACITY)
}

// fileConfig mirrors Config for decoding files. Durations are strings
// ("30s", "48h") so both YAML and TOML read them the same way.
type fileConfig struct {
	Address            *string `yaml:"address" toml:"address"`
	BackendURL         *string `yaml:"backend_url" toml:"backend_url"`
	DBPath             *string `yaml:"db_path" toml:"db_path"`
	LogLevel           *string `yaml:"log_level" toml:"log_level"`
	SearchTimeout      *string `yaml:"search_timeout" toml:"search_timeout"`
	RateLimitPerMinute *int    `yaml:"rate_limit_per_minute" toml:"rate_limit_per_minute"`
	CacheTTL           *string `yaml:"cache_ttl" toml:"cache_ttl"`
	CacheSize          *int    `yaml:"cache_size" toml:"cache_size"`
	RefreshEnabled     *bool   `yaml:"refresh_enabled" toml:"refresh_enabled"`
	RefreshInterval    *string `yaml:"refresh_interval" toml:"refresh_interval"`
	Timezone           *string `yaml:"timezone" toml:"timezone"`
	SessionCapacity    *int    `yaml:"session_capacity" toml:"session_capacity"`
}

const envPrefix = "COMPAREAID_"

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Address:            ":8765",
		BackendURL:         "http://localhost:8765",
		DBPath:             "./data/grocery_prices.ddb",
		LogLevel:           "info",
		SearchTimeout:      30 * time.Second,
		RateLimitPerMinute: 60,
		CacheTTL:           10 * time.Minute,
		CacheSize:          256,
		RefreshEnabled:     true,
		RefreshInterval:    48 * time.Hour,
		Timezone:           "Europe/Dublin",
		SessionCapacity:    1024,
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return serr.Wrap(err, "failed to read config file", "path", path)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		return serr.New("unsupported config file type " + ext + ", expected .yaml, .yml or .toml")
	}
	if err != nil {
		return serr.Wrap(err, "failed to parse config file", "path", path)
	}

	setString(&c.Address, fc.Address)
	setString(&c.BackendURL, fc.BackendURL)
	setString(&c.DBPath, fc.DBPath)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.Timezone, fc.Timezone)
	setInt(&c.RateLimitPerMinute, fc.RateLimitPerMinute)
	setInt(&c.CacheSize, fc.CacheSize)
	setInt(&c.SessionCapacity, fc.SessionCapacity)
	if fc.RefreshEnabled != nil {
		c.RefreshEnabled = *fc.RefreshEnabled
	}

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"search_timeout", fc.SearchTimeout, &c.SearchTimeout},
		{"cache_ttl", fc.CacheTTL, &c.CacheTTL},
		{"refresh_interval", fc.RefreshInterval, &c.RefreshInterval},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return serr.Wrap(err, "invalid "+d.key+" in config file, expected duration like '30s' or '48h'")
		}
		*d.dst = v
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("ADDRESS"); ok {
		c.Address = v
	}
	if v, ok := lookupEnv("BACKEND_URL"); ok {
		c.BackendURL = v
	}
	if v, ok := lookupEnv("DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookupEnv("TIMEZONE"); ok {
		c.Timezone = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"RATE_LIMIT", &c.RateLimitPerMinute},
		{"CACHE_SIZE", &c.CacheSize},
		{"SESSION_CAPACITY", &c.SessionCapacity},
	}
	for _, i := range ints {
		v, ok := lookupEnv(i.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return serr.Wrap(err, "invalid "+envPrefix+i.key+" value, expected an integer")
		}
		*i.dst = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SEARCH_TIMEOUT", &c.SearchTimeout},
		{"CACHE_TTL", &c.CacheTTL},
		{"REFRESH_INTERVAL", &c.RefreshInterval},
	}
	for _, d := range durations {
		v, ok := lookupEnv(d.key)
		if !ok {
			continue
		}
		dur, err := time.ParseDuration(v)
		if err != nil {
			return serr.Wrap(err, "invalid "+envPrefix+d.key+" value, expected duration like '30s' or '48h'")
		}
		*d.dst = dur
	}

	if v, ok := lookupEnv("REFRESH_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return serr.Wrap(err, "invalid "+envPrefix+"REFRESH_ENABLED value, expected true/false")
		}
		c.RefreshEnabled = enabled
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Address == "" {
		return serr.New("address is required")
	}
	if c.BackendURL == "" {
		return serr.New("backend_url is required")
	}
	if c.SearchTimeout < 0 {
		return serr.New("search_timeout cannot be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return serr.New("rate_limit_per_minute cannot be negative")
	}
	if c.CacheSize < 1 {
		return serr.New("cache_size must be at least 1")
	}
	if c.SessionCapacity < 1 {
		return serr.New("session_capacity must be at least 1")
	}
	if c.RefreshEnabled && c.RefreshInterval < time.Minute {
		return serr.New("refresh_interval must be at least 1m")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return serr.Wrap(err, "unknown timezone "+c.Timezone)
	}
	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
