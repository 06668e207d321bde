// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package yandex

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/http"
)

const (
	APIEndpoint = "https://geocode-maps.yandex.ru/1.x/"
	APITimeout  = time.Second * 10
	name        = "yandex"

	kindHouse = "house"
)

type Yandex struct {
	apikey   string
	endpoint string
	http     *http.Client
	lang     string
	timeout  time.Duration
}

type Response struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []FeatureMember `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type FeatureMember struct {
	GeoObject *GeoObject `json:"GeoObject"`
}

type GeoObject struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	MetaDataProperty struct {
		GeocoderMetaData *GeocoderMetaData `json:"GeocoderMetaData"`
	} `json:"metaDataProperty"`
	Point *struct {
		Pos string `json:"pos"`
	} `json:"Point"`
}

type GeocoderMetaData struct {
	Kind      string  `json:"kind"`
	Precision string  `json:"precision"`
	Text      string  `json:"text"`
	Address   Address `json:"Address"`
}

type Address struct {
	CountryCode string `json:"country_code"`
	Formatted   string `json:"formatted"`
	PostalCode  string `json:"postal_code"`
}

// Option configures optional request parameters of the Yandex geocoder.
type Option func(*Yandex)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(y *Yandex) {
		if endpoint != "" {
			y.endpoint = endpoint
		}
	}
}

// WithLang sets the response language, e.g. "ru_RU" or "en_US".
func WithLang(lang string) Option {
	return func(y *Yandex) {
		y.lang = lang
	}
}

// WithTimeout sets the timeout of a single API request.
func WithTimeout(timeout time.Duration) Option {
	return func(y *Yandex) {
		if timeout > 0 {
			y.timeout = timeout
		}
	}
}

func New(client *http.Client, apikey string, opts ...Option) *Yandex {
	y := &Yandex{
		apikey:   apikey,
		endpoint: APIEndpoint,
		http:     client,
		timeout:  APITimeout,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *Yandex) Name() string {
	return name
}

// Geocode resolves the query via the Yandex geocoder and returns the position and the
// formatted address of the first matching object.
func (y *Yandex) Geocode(ctx context.Context, query string) (geocode.Result, error) {
	query, err := geocode.NormalizeQuery(query)
	if err != nil {
		return geocode.Result{}, err
	}

	object, err := y.lookup(ctx, query, "")
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to geocode %q via Yandex API: %w", query, err)
	}
	if object.Point == nil {
		return geocode.Result{}, fmt.Errorf("%w: GeoObject has no Point", geocode.ErrParse)
	}
	coords, err := geo.ParsePos(object.Point.Pos)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("%w: %w", geocode.ErrParse, err)
	}
	meta := object.MetaDataProperty.GeocoderMetaData
	if meta == nil || meta.Text == "" {
		return geocode.Result{}, fmt.Errorf("%w: GeoObject has no GeocoderMetaData text", geocode.ErrParse)
	}

	return geocode.Result{
		Coordinate:       coords,
		FormattedAddress: meta.Text,
		PostalCode:       meta.Address.PostalCode,
	}, nil
}

// Postcode performs a house-level lookup for the address and returns its postal code.
func (y *Yandex) Postcode(ctx context.Context, address string) (string, error) {
	address, err := geocode.NormalizeQuery(address)
	if err != nil {
		return "", err
	}

	object, err := y.lookup(ctx, address, kindHouse)
	if err != nil {
		return "", fmt.Errorf("failed to look up postal code for %q via Yandex API: %w", address, err)
	}
	meta := object.MetaDataProperty.GeocoderMetaData
	if meta == nil {
		return "", fmt.Errorf("%w: GeoObject has no GeocoderMetaData", geocode.ErrParse)
	}
	return meta.Address.PostalCode, nil
}

func (y *Yandex) query(text, kind string) url.Values {
	query := url.Values{}
	query.Set("apikey", y.apikey)
	query.Set("geocode", text)
	query.Set("format", "json")
	if kind != "" {
		query.Set("kind", kind)
	}
	if y.lang != "" {
		query.Set("lang", y.lang)
	}
	return query
}

func (y *Yandex) lookup(ctx context.Context, text, kind string) (*GeoObject, error) {
	var response Response
	if _, err := y.http.GetWithTimeout(ctx, y.endpoint, &response, y.query(text, kind), nil, y.timeout); err != nil {
		return nil, err
	}

	members := response.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, geocode.ErrNoResult
	}
	if members[0].GeoObject == nil {
		return nil, fmt.Errorf("%w: featureMember has no GeoObject", geocode.ErrParse)
	}
	return members[0].GeoObject, nil
}
