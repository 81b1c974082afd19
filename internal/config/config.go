// Package config loads qrick settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LogConfig mirrors logger.Options.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"`
	ErrorPath  string `mapstructure:"errorpath"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxBackups int    `mapstructure:"maxbackups"`
	MaxAge     int    `mapstructure:"maxage"`
	Compress   bool   `mapstructure:"compress"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RenderConfig holds rendering defaults applied when a composition leaves them unset.
type RenderConfig struct {
	PixelRatio     float64 `mapstructure:"pixelratio"`
	CardPixelRatio float64 `mapstructure:"cardpixelratio"`
	Size           float64 `mapstructure:"size"`
	Padding        float64 `mapstructure:"padding"`
	ImageSize      float64 `mapstructure:"imagesize"`
	MarriageSeed   uint64  `mapstructure:"marriageseed"`
	// MaxPixels bounds the device pixels of one rendered canvas.
	MaxPixels int `mapstructure:"maxpixels"`
}

type MediaConfig struct {
	MaxBytes int `mapstructure:"maxbytes"`
	// MaxPixels bounds the decoded size of one uploaded image.
	MaxPixels int `mapstructure:"maxpixels"`
	// CacheEntries bounds the decoded image cache.
	CacheEntries int `mapstructure:"cacheentries"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Render RenderConfig `mapstructure:"render"`
	Media  MediaConfig  `mapstructure:"media"`
}

const envPrefix = "QRICK"

// Defaults for the pixel and cache budgets.
const (
	DefaultMaxPixels      = 64 << 20
	DefaultMediaMaxPixels = 40 << 20
	DefaultCacheEntries   = 64
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxsize", 10)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxage", 28)
	v.SetDefault("render.pixelratio", 2)
	v.SetDefault("render.cardpixelratio", 4)
	v.SetDefault("render.size", 256)
	v.SetDefault("render.padding", 8)
	v.SetDefault("render.imagesize", 60)
	v.SetDefault("render.marriageseed", 20241231)
	v.SetDefault("render.maxpixels", DefaultMaxPixels)
	v.SetDefault("media.maxbytes", 8<<20)
	v.SetDefault("media.maxpixels", DefaultMediaMaxPixels)
	v.SetDefault("media.cacheentries", DefaultCacheEntries)
}

// Load reads path (if non-empty) and overlays QRICK_* environment variables.
// A bare PORT variable still selects the listen port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && !v.InConfig("server.addr") && os.Getenv(envPrefix+"_SERVER_ADDR") == "" {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Render.PixelRatio <= 0 || c.Render.CardPixelRatio <= 0 {
		return errors.New("render pixel ratios must be positive")
	}
	if c.Render.Size <= 0 {
		return errors.New("render.size must be positive")
	}
	if c.Render.Padding < 0 {
		return errors.New("render.padding must not be negative")
	}
	if c.Render.MaxPixels <= 0 {
		return errors.New("render.maxpixels must be positive")
	}
	if c.Media.MaxBytes <= 0 || c.Media.MaxPixels <= 0 {
		return errors.New("media.maxbytes and media.maxpixels must be positive")
	}
	if c.Media.CacheEntries < 0 {
		return errors.New("media.cacheentries must not be negative")
	}
	return nil
}
