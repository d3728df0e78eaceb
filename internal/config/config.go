// Package config loads appgraph settings.
//
// Values are resolved in order, later sources winning:
//
//  1. built-in defaults
//  2. the TOML file ($XDG_CONFIG_HOME/appgraph/config.toml, or --config)
//  3. a .env file in the working directory
//  4. APPGRAPH_* environment variables
//
// A missing default config file or .env file is not an error; a missing file
// named explicitly is.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/appgraph/pkg/builder"
	"github.com/matzehuels/appgraph/pkg/cache"
	"github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/layout"
	"github.com/matzehuels/appgraph/pkg/store"
	"github.com/matzehuels/appgraph/pkg/store/mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

type LayoutConfig struct {
	Direction  string `toml:"direction"`
	IDStrategy string `toml:"id_strategy"`
	// NodeSep and RankSep are the pixel gaps between nodes of a rank and
	// between ranks.
	NodeSep float64 `toml:"node_sep"`
	RankSep float64 `toml:"rank_sep"`
}

type SourceConfig struct {
	// URL is the record endpoint used by `GET /layout` and by `appgraph
	// layout` when no location is given.
	URL     string `toml:"url"`
	Retries int    `toml:"retries"`
}

type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
	// Prefix namespaces layout keys, so several deployments can share one
	// Redis instance.
	Prefix string `toml:"prefix"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Direction:  string(layout.TopToBottom),
			IDStrategy: string(builder.Composite),
			NodeSep:    layout.DefaultNodeSep,
			RankSep:    layout.DefaultRankSep,
		},
		Source: SourceConfig{Retries: 3},
		Cache:  CacheConfig{Backend: CacheFile, RedisAddr: "localhost:6379", TTL: 24 * time.Hour},
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: StoreMemory, Database: "appgraph"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/appgraph/config.toml, falling back
// to the platform config directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "appgraph", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "appgraph", "config.toml")
}

// LoadOptions controls where [Load] looks.
type LoadOptions struct {
	// Path is an explicit config file. Empty means DefaultPath, which may
	// be absent.
	Path string
	// EnvFile is the dotenv file. Empty means ".env".
	EnvFile string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration and validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if err := cfg.decodeFile(opts.Path); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", envFile)
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return nil
		}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// envBinding maps an environment variable onto a config field.
type envBinding struct {
	key string
	set func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"APPGRAPH_DIRECTION", func(c *Config, v string) error { c.Layout.Direction = v; return nil }},
	{"APPGRAPH_ID_STRATEGY", func(c *Config, v string) error { c.Layout.IDStrategy = v; return nil }},
	{"APPGRAPH_NODE_SEP", func(c *Config, v string) error { return parseFloat(&c.Layout.NodeSep, v) }},
	{"APPGRAPH_RANK_SEP", func(c *Config, v string) error { return parseFloat(&c.Layout.RankSep, v) }},
	{"APPGRAPH_SOURCE_URL", func(c *Config, v string) error { c.Source.URL = v; return nil }},
	{"APPGRAPH_SOURCE_RETRIES", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Source.Retries = n
		return nil
	}},
	{"APPGRAPH_CACHE_BACKEND", func(c *Config, v string) error { c.Cache.Backend = v; return nil }},
	{"APPGRAPH_CACHE_DIR", func(c *Config, v string) error { c.Cache.Dir = v; return nil }},
	{"APPGRAPH_CACHE_PREFIX", func(c *Config, v string) error { c.Cache.Prefix = v; return nil }},
	{"APPGRAPH_REDIS_ADDR", func(c *Config, v string) error { c.Cache.RedisAddr = v; return nil }},
	{"APPGRAPH_CACHE_TTL", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Cache.TTL = d
		return nil
	}},
	{"APPGRAPH_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"APPGRAPH_STORE_BACKEND", func(c *Config, v string) error { c.Store.Backend = v; return nil }},
	{"APPGRAPH_MONGO_URI", func(c *Config, v string) error { c.Store.MongoURI = v; return nil }},
	{"APPGRAPH_MONGO_DATABASE", func(c *Config, v string) error { c.Store.Database = v; return nil }},
}

func parseFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		if err := b.set(c, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s=%q", b.key, v)
		}
	}
	return nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	if _, err := layout.ParseDirection(c.Layout.Direction); err != nil {
		return err
	}
	if _, err := builder.ParseIDStrategy(c.Layout.IDStrategy); err != nil {
		return err
	}
	if c.Layout.NodeSep <= 0 || c.Layout.RankSep <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.node_sep and layout.rank_sep: must be positive")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl: must not be negative")
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "store.backend: unknown backend %q (want memory or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri: required for the mongo backend")
	}
	if c.Source.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source.retries: must not be negative")
	}
	return nil
}

// EngineOptions returns the layout engine options implied by the layout
// section.
func (c Config) EngineOptions() []layout.Option {
	return []layout.Option{layout.WithSeparation(c.Layout.NodeSep, c.Layout.RankSep)}
}

// Keyer returns the cache keyer, scoped by cache.prefix when one is set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// OpenCache constructs the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisAddr)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// OpenStore constructs the configured snapshot store.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store.Backend == StoreMongo {
		s, err := mongo.Open(ctx, mongo.Config{URI: c.Store.MongoURI, Database: c.Store.Database})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return store.NewMemory(), nil
}
