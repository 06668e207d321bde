// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	const (
		expectProvider        = "yandex"
		expectLogLevel        = slog.LevelInfo
		expectZoom            = 5
		expectLat             = 55.757718
		expectLon             = 37.977751
		expectStyle           = "light"
		expectAttempts        = 10
		expectConnectAttempts = 5
		expectBackoff         = time.Millisecond * 500
		expectEndpoint        = "https://static-maps.yandex.ru/1.x/"
	)
	t.Run("new config with all defaults set", func(t *testing.T) {
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.GeoCoder.Provider != expectProvider {
			t.Errorf("expected geocoder provider to be: %s, got %s", expectProvider, conf.GeoCoder.Provider)
		}
		if conf.LogLevel != expectLogLevel {
			t.Errorf("expected log level to be: %s, got %s", expectLogLevel, conf.LogLevel)
		}
		if *conf.Map.Zoom != expectZoom {
			t.Errorf("expected map zoom to be: %d, got %d", expectZoom, *conf.Map.Zoom)
		}
		if *conf.Map.Lat != expectLat || *conf.Map.Lon != expectLon {
			t.Errorf("expected map center to be: %f,%f, got %f,%f", expectLon, expectLat, *conf.Map.Lon,
				*conf.Map.Lat)
		}
		if conf.Map.Style != expectStyle {
			t.Errorf("expected map style to be: %s, got %s", expectStyle, conf.Map.Style)
		}
		if conf.StaticMap.Endpoint != expectEndpoint {
			t.Errorf("expected static map endpoint to be: %s, got %s", expectEndpoint, conf.StaticMap.Endpoint)
		}
		if conf.StaticMap.Retry.Attempts != expectAttempts {
			t.Errorf("expected retry attempts to be: %d, got %d", expectAttempts, conf.StaticMap.Retry.Attempts)
		}
		if conf.StaticMap.Retry.ConnectAttempts != expectConnectAttempts {
			t.Errorf("expected retry connect attempts to be: %d, got %d", expectConnectAttempts,
				conf.StaticMap.Retry.ConnectAttempts)
		}
		if conf.StaticMap.Retry.Backoff != expectBackoff {
			t.Errorf("expected retry backoff to be: %s, got %s", expectBackoff, conf.StaticMap.Retry.Backoff)
		}
		if conf.GeoCoder.APIKey != "" {
			t.Error("expected no default API key")
		}
	})
	t.Run("API key is read from env", func(t *testing.T) {
		t.Setenv("MAPVIEWER_GEOCODER_APIKEY", "test-key")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.GeoCoder.APIKey != "test-key" {
			t.Errorf("expected API key to be read from env, got %q", conf.GeoCoder.APIKey)
		}
	})
	t.Run("locale is read from LC_MESSAGES if not set", func(t *testing.T) {
		t.Setenv("LC_MESSAGES", "ru_RU.UTF-8")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Locale != "ru-RU" {
			t.Errorf("expected locale to be ru-RU, got %q", conf.Locale)
		}
	})
	t.Run("style and provider are case insensitive", func(t *testing.T) {
		t.Setenv("MAPVIEWER_MAP_STYLE", "Dark")
		t.Setenv("MAPVIEWER_GEOCODER_PROVIDER", "Nominatim")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Map.Style != "dark" {
			t.Errorf("expected style to be normalized to dark, got %q", conf.Map.Style)
		}
		if conf.GeoCoder.Provider != "nominatim" {
			t.Errorf("expected provider to be normalized to nominatim, got %q", conf.GeoCoder.Provider)
		}
	})
	t.Run("new config with invalid values from env", func(t *testing.T) {
		t.Setenv("MAPVIEWER_LOGLEVEL", "invalid")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validation fails", func(t *testing.T) {
		tests := []struct {
			name  string
			key   string
			value string
		}{
			{"zoom below range", "MAPVIEWER_MAP_ZOOM", "-1"},
			{"zoom above range", "MAPVIEWER_MAP_ZOOM", "18"},
			{"latitude out of range", "MAPVIEWER_MAP_LAT", "91"},
			{"longitude out of range", "MAPVIEWER_MAP_LON", "-181"},
			{"unknown style", "MAPVIEWER_MAP_STYLE", "sepia"},
			{"unknown provider", "MAPVIEWER_GEOCODER_PROVIDER", "unknown"},
			{"connect attempts above total", "MAPVIEWER_STATICMAP_RETRY_CONNECT_ATTEMPTS", "11"},
			{"negative cache TTL", "MAPVIEWER_GEOCODER_CACHE_TTL", "-1s"},
			{"negative geocoder timeout", "MAPVIEWER_GEOCODER_TIMEOUT", "-5s"},
			{"negative window width", "MAPVIEWER_WINDOW_WIDTH", "-10"},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Setenv(tc.key, tc.value)
				if _, err := New(); err == nil {
					t.Error("expected config to fail, but didn't")
				}
			})
		}
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("reading config from valid file succeeds", func(t *testing.T) {
		conf, err := NewFromFile("../../etc", "config.toml")
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.GeoCoder.Provider != "yandex" {
			t.Errorf("expected geocoder provider to be yandex, got %s", conf.GeoCoder.Provider)
		}
		if *conf.Map.Zoom != 5 {
			t.Errorf("expected map zoom to be 5, got %d", *conf.Map.Zoom)
		}
		if conf.StaticMap.Retry.MaxBackoff != time.Minute*2 {
			t.Errorf("expected max backoff to be 2m, got %s", conf.StaticMap.Retry.MaxBackoff)
		}
		if conf.Window.Width != 650 || conf.Window.Height != 600 {
			t.Errorf("expected window size to be 650x600, got %.0fx%.0f", conf.Window.Width, conf.Window.Height)
		}
	})
	t.Run("env overrides values from file", func(t *testing.T) {
		t.Setenv("MAPVIEWER_MAP_ZOOM", "12")
		conf, err := NewFromFile("../../etc", "config.toml")
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if *conf.Map.Zoom != 12 {
			t.Errorf("expected map zoom to be 12, got %d", *conf.Map.Zoom)
		}
	})
	t.Run("zero zoom and center are kept", func(t *testing.T) {
		conf, err := NewFromFile("../../testdata", "zero_map.toml")
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if *conf.Map.Zoom != 0 {
			t.Errorf("expected map zoom to be 0, got %d", *conf.Map.Zoom)
		}
		if *conf.Map.Lat != 0 || *conf.Map.Lon != 0 {
			t.Errorf("expected map center to be 0,0, got %f,%f", *conf.Map.Lon, *conf.Map.Lat)
		}
	})
	t.Run("reading config from non-existent file fails", func(t *testing.T) {
		_, err := NewFromFile("../../etc", "non-existent.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("reading invalid config file fails", func(t *testing.T) {
		_, err := NewFromFile("../../testdata", "invalid.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
}
