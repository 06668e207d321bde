// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv = "MAPVIEWER"

	// MinZoom and MaxZoom are the zoom levels supported by the static map API
	MinZoom = 0
	MaxZoom = 17

	DefaultLat  = 55.757718
	DefaultLon  = 37.977751
	DefaultZoom = 5
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	GeoCoder struct {
		// Allowed values: yandex, nominatim, opencage, geocode-earth
		Provider string `fig:"provider" default:"yandex"`
		APIKey   string `fig:"apikey"`
		// Empty means the provider's default endpoint
		Endpoint string        `fig:"endpoint"`
		Lang     string        `fig:"lang"`
		Timeout  time.Duration `fig:"timeout" default:"10s"`
		// Set to 0 to disable caching of geocode results
		CacheTTL time.Duration `fig:"cache_ttl" default:"10m"`
	} `fig:"geocoder"`

	StaticMap struct {
		Endpoint string        `fig:"endpoint" default:"https://static-maps.yandex.ru/1.x/"`
		Timeout  time.Duration `fig:"timeout" default:"10s"`
		Retry    struct {
			Attempts        uint          `fig:"attempts" default:"10"`
			ConnectAttempts uint          `fig:"connect_attempts" default:"5"`
			Backoff         time.Duration `fig:"backoff" default:"500ms"`
			MaxBackoff      time.Duration `fig:"max_backoff" default:"2m"`
		} `fig:"retry"`
	} `fig:"staticmap"`

	// fig replaces zero values with the default tag, so the center and zoom are
	// pointers and get their defaults in Validate. This keeps 0 configurable.
	Map struct {
		Lat  *float64 `fig:"lat"`
		Lon  *float64 `fig:"lon"`
		Zoom *int     `fig:"zoom"`
		// Allowed values: light, dark, auto
		Style string `fig:"style" default:"light"`
	} `fig:"map"`

	Window struct {
		Width  float32 `fig:"width" default:"650"`
		Height float32 `fig:"height" default:"600"`
	} `fig:"window"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.GeoCoder.Provider = strings.ToLower(c.GeoCoder.Provider)
	switch c.GeoCoder.Provider {
	case "yandex", "nominatim", "opencage", "geocode-earth":
	default:
		return fmt.Errorf("invalid geocoder provider: %s", c.GeoCoder.Provider)
	}
	if c.GeoCoder.Timeout <= 0 {
		return fmt.Errorf("invalid geocoder timeout: %s", c.GeoCoder.Timeout)
	}
	if c.GeoCoder.CacheTTL < 0 {
		return fmt.Errorf("invalid geocoder cache TTL: %s", c.GeoCoder.CacheTTL)
	}
	if c.StaticMap.Endpoint == "" {
		return fmt.Errorf("static map endpoint must not be empty")
	}
	if c.StaticMap.Timeout <= 0 {
		return fmt.Errorf("invalid static map timeout: %s", c.StaticMap.Timeout)
	}
	if c.StaticMap.Retry.Attempts < 1 {
		return fmt.Errorf("invalid static map retry attempts: %d", c.StaticMap.Retry.Attempts)
	}
	if c.StaticMap.Retry.ConnectAttempts > c.StaticMap.Retry.Attempts {
		return fmt.Errorf("static map connect attempts (%d) exceed total attempts (%d)",
			c.StaticMap.Retry.ConnectAttempts, c.StaticMap.Retry.Attempts)
	}
	if c.StaticMap.Retry.Backoff < 0 || c.StaticMap.Retry.MaxBackoff < 0 {
		return fmt.Errorf("invalid static map retry backoff: %s/%s", c.StaticMap.Retry.Backoff,
			c.StaticMap.Retry.MaxBackoff)
	}
	setDefault(&c.Map.Lat, DefaultLat)
	setDefault(&c.Map.Lon, DefaultLon)
	setDefault(&c.Map.Zoom, DefaultZoom)
	if *c.Map.Zoom < MinZoom || *c.Map.Zoom > MaxZoom {
		return fmt.Errorf("invalid map zoom: %d", *c.Map.Zoom)
	}
	lat, lon := *c.Map.Lat, *c.Map.Lon
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("invalid map center: %f,%f", lon, lat)
	}
	c.Map.Style = strings.ToLower(c.Map.Style)
	switch c.Map.Style {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("invalid map style: %s", c.Map.Style)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %.0fx%.0f", c.Window.Width, c.Window.Height)
	}

	return nil
}

func setDefault[T any](field **T, value T) {
	if *field == nil {
		*field = &value
	}
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
