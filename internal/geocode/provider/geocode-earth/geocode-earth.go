// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/http"
)

const (
	APIEndpoint = "https://api.geocode.earth/v1/search"
	APITimeout  = time.Second * 10
	name        = "geocode-earth"
)

type GeocodeEarth struct {
	apikey   string
	endpoint string
	http     *http.Client
	lang     language.Tag
	timeout  time.Duration
}

type Response struct {
	Features []Feature `json:"features"`
	Type     string    `json:"type"`
}

type Feature struct {
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
	Type       string     `json:"type"`
}

// Geometry is a GeoJSON point. Coordinates are ordered longitude, latitude.
type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type Properties struct {
	DisplayName string `json:"label"`
	City        string `json:"locality"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	HouseNumber string `json:"housenumber"`
	Postcode    string `json:"postalcode"`
	Road        string `json:"street"`
	State       string `json:"region"`
}

// New returns a geocode.earth geocoder. An empty endpoint or a non-positive timeout
// selects the default.
func New(client *http.Client, lang language.Tag, apikey, endpoint string, timeout time.Duration) *GeocodeEarth {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &GeocodeEarth{
		apikey:   apikey,
		endpoint: endpoint,
		lang:     lang,
		http:     client,
		timeout:  timeout,
	}
}

func (g *GeocodeEarth) Name() string {
	return name
}

func (g *GeocodeEarth) Geocode(ctx context.Context, query string) (geocode.Result, error) {
	query, err := geocode.NormalizeQuery(query)
	if err != nil {
		return geocode.Result{}, err
	}

	feature, err := g.search(ctx, query)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to retrieve address details from geocode.earth API: %w", err)
	}
	if feature.Geometry == nil || len(feature.Geometry.Coordinates) < 2 {
		return geocode.Result{}, fmt.Errorf("%w: geocode.earth feature has no point geometry", geocode.ErrParse)
	}
	if feature.Properties.DisplayName == "" {
		return geocode.Result{}, fmt.Errorf("%w: geocode.earth feature has no label", geocode.ErrParse)
	}

	return geocode.Result{
		Coordinate: geo.Coordinate{
			Lon: feature.Geometry.Coordinates[0],
			Lat: feature.Geometry.Coordinates[1],
		},
		FormattedAddress: feature.Properties.DisplayName,
		PostalCode:       feature.Properties.Postcode,
	}, nil
}

func (g *GeocodeEarth) Postcode(ctx context.Context, address string) (string, error) {
	address, err := geocode.NormalizeQuery(address)
	if err != nil {
		return "", err
	}

	feature, err := g.search(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve postcode from geocode.earth API: %w", err)
	}
	return feature.Properties.Postcode, nil
}

func (g *GeocodeEarth) search(ctx context.Context, text string) (Feature, error) {
	var response Response

	query := url.Values{}
	query.Set("api_key", g.apikey)
	query.Set("text", text)
	query.Set("size", "1")
	query.Set("lang", g.lang.String())

	if _, err := g.http.GetWithTimeout(ctx, g.endpoint, &response, query, nil, g.timeout); err != nil {
		return Feature{}, err
	}
	if len(response.Features) < 1 {
		return Feature{}, fmt.Errorf("%w for address %q", geocode.ErrNoResult, text)
	}
	return response.Features[0], nil
}
