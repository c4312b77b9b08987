// Package config loads service settings from defaults, an optional YAML file
// and the environment.
package config

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/DbIM/qr-code/internal/compose"
	"github.com/DbIM/qr-code/internal/payment"
	"github.com/DbIM/qr-code/internal/qr"
)

// EnvPrefix prefixes every environment override, e.g. PAYQR_QR_LEVEL=H.
const EnvPrefix = "PAYQR"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	QR     QRConfig     `mapstructure:"qr"`
	Image  ImageConfig  `mapstructure:"image"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// PublicBaseURL, when set, turns the relative /pay link into an absolute
	// one before it is placed in the QR symbol.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type QRConfig struct {
	Backend string `mapstructure:"backend"`
	Size    int    `mapstructure:"size"`
	Level   string `mapstructure:"level"`
}

type ImageConfig struct {
	Background  string `mapstructure:"background"`
	LogoPath    string `mapstructure:"logo_path"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.public_base_url", "")
	v.SetDefault("qr.backend", qr.BackendYeqown)
	v.SetDefault("qr.size", 300)
	v.SetDefault("qr.level", qr.DefaultLevel.String())
	v.SetDefault("image.background", "#EAF3FF")
	v.SetDefault("image.logo_path", "")
	v.SetDefault("image.jpeg_quality", 92)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.max_entries", 1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads path (if non-empty), applies PAYQR_* environment overrides and
// the plain PORT variable, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = withPort(cfg.Server.Addr, port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withPort(addr, port string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}

// Validate checks the values that would otherwise fail on the first request.
func (c *Config) Validate() error {
	if _, err := qr.ParseLevel(c.QR.Level); err != nil {
		return errors.Wrap(err, "qr.level")
	}
	if _, err := qr.NewSource(c.QR.Backend); err != nil {
		return errors.Wrap(err, "qr.backend")
	}
	if c.QR.Size <= 0 {
		return errors.Errorf("qr.size must be positive, got %d", c.QR.Size)
	}
	if _, err := compose.ParseHexColor(c.Image.Background); err != nil {
		return errors.Wrap(err, "image.background")
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return errors.Errorf("image.jpeg_quality must be in 1..100, got %d", c.Image.JPEGQuality)
	}
	if c.Server.PublicBaseURL != "" {
		base, err := payment.NormalizeBaseURL(c.Server.PublicBaseURL)
		if err != nil {
			return errors.Wrap(err, "server.public_base_url")
		}
		c.Server.PublicBaseURL = base
	}
	return nil
}
