// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/mapviewer/internal/config"
	"github.com/wneessen/mapviewer/internal/geocode"
	geocodeearth "github.com/wneessen/mapviewer/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/mapviewer/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/mapviewer/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/mapviewer/internal/geocode/provider/yandex"
	"github.com/wneessen/mapviewer/internal/http"
	"github.com/wneessen/mapviewer/internal/staticmap"
)

// cacheMissTTL is how long a lookup without result is remembered
const cacheMissTTL = time.Minute

func selectGeocodeProvider(conf *config.Config, client *http.Client, lang language.Tag) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case "yandex":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("yandex geocoder requires an API key")
		}
		geocoder = yandex.New(client, conf.GeoCoder.APIKey,
			yandex.WithEndpoint(conf.GeoCoder.Endpoint),
			yandex.WithLang(conf.GeoCoder.Lang),
			yandex.WithTimeout(conf.GeoCoder.Timeout),
		)
	case "nominatim":
		if conf.GeoCoder.Lang != "" {
			lang = language.Make(conf.GeoCoder.Lang)
		}
		geocoder = nominatim.New(client, lang, conf.GeoCoder.Endpoint, conf.GeoCoder.Timeout)
	case "opencage":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		if conf.GeoCoder.Lang != "" {
			lang = language.Make(conf.GeoCoder.Lang)
		}
		geocoder = opencage.New(client, lang, conf.GeoCoder.APIKey, conf.GeoCoder.Endpoint, conf.GeoCoder.Timeout)
	case "geocode-earth":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		if conf.GeoCoder.Lang != "" {
			lang = language.Make(conf.GeoCoder.Lang)
		}
		geocoder = geocodeearth.New(client, lang, conf.GeoCoder.APIKey, conf.GeoCoder.Endpoint,
			conf.GeoCoder.Timeout)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	if conf.GeoCoder.CacheTTL <= 0 {
		return geocoder, nil
	}
	return geocode.NewCachedGeocoder(geocoder, conf.GeoCoder.CacheTTL, min(cacheMissTTL, conf.GeoCoder.CacheTTL)), nil
}

func newStaticMapClient(conf *config.Config, client *http.Client) *staticmap.Client {
	policy := http.RetryPolicy{
		MaxAttempts:        conf.StaticMap.Retry.Attempts,
		MaxConnectAttempts: conf.StaticMap.Retry.ConnectAttempts,
		InitialBackoff:     conf.StaticMap.Retry.Backoff,
		MaxBackoff:         conf.StaticMap.Retry.MaxBackoff,
	}
	return staticmap.New(client, conf.StaticMap.Endpoint, conf.StaticMap.Timeout, policy)
}
