// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

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
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	APITimeout  = time.Second * 10
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	endpoint string
	http     *http.Client
	lang     language.Tag
	timeout  time.Duration
}

type Response struct {
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
}

type Result struct {
	Components  Components `json:"components"`
	DisplayName string     `json:"formatted"`
	Geometry    *Geometry  `json:"geometry"`
}

type Components struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	HouseNumber string `json:"house_number"`
	Postcode    string `json:"postcode"`
	Road        string `json:"road"`
	State       string `json:"state"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// New returns an OpenCage geocoder. An empty endpoint or a non-positive timeout selects
// the default.
func New(client *http.Client, lang language.Tag, apikey, endpoint string, timeout time.Duration) *OpenCage {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &OpenCage{
		apikey:   apikey,
		endpoint: endpoint,
		lang:     lang,
		http:     client,
		timeout:  timeout,
	}
}

func (o *OpenCage) Name() string {
	return name
}

func (o *OpenCage) Geocode(ctx context.Context, query string) (geocode.Result, error) {
	query, err := geocode.NormalizeQuery(query)
	if err != nil {
		return geocode.Result{}, err
	}

	result, err := o.search(ctx, query)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to retrieve address details from OpenCage API: %w", err)
	}
	if result.Geometry == nil {
		return geocode.Result{}, fmt.Errorf("%w: OpenCage API result has no geometry", geocode.ErrParse)
	}
	if result.DisplayName == "" {
		return geocode.Result{}, fmt.Errorf("%w: OpenCage API result has no formatted address", geocode.ErrParse)
	}

	return geocode.Result{
		Coordinate:       geo.Coordinate{Lon: result.Geometry.Lon, Lat: result.Geometry.Lat},
		FormattedAddress: result.DisplayName,
		PostalCode:       result.Components.Postcode,
	}, nil
}

func (o *OpenCage) Postcode(ctx context.Context, address string) (string, error) {
	address, err := geocode.NormalizeQuery(address)
	if err != nil {
		return "", err
	}

	result, err := o.search(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve postcode from OpenCage API: %w", err)
	}
	return result.Components.Postcode, nil
}

func (o *OpenCage) search(ctx context.Context, text string) (Result, error) {
	var response Response

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", text)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.lang.String())

	if _, err := o.http.GetWithTimeout(ctx, o.endpoint, &response, query, nil, o.timeout); err != nil {
		return Result{}, err
	}
	if len(response.Results) < 1 {
		return Result{}, fmt.Errorf("%w for address %q", geocode.ErrNoResult, text)
	}
	return response.Results[0], nil
}
