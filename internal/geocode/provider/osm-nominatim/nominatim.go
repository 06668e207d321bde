// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	endpoint string
	http     *http.Client
	lang     language.Tag
	timeout  time.Duration
}

type SearchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

type Address struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
}

// New returns a Nominatim geocoder. An empty endpoint or a non-positive timeout selects
// the default.
func New(client *http.Client, lang language.Tag, endpoint string, timeout time.Duration) *Nominatim {
	if endpoint == "" {
		endpoint = APISearchEndpoint
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &Nominatim{
		endpoint: endpoint,
		lang:     lang,
		http:     client,
		timeout:  timeout,
	}
}

func (n *Nominatim) Name() string {
	return name
}

func (n *Nominatim) Geocode(ctx context.Context, query string) (geocode.Result, error) {
	query, err := geocode.NormalizeQuery(query)
	if err != nil {
		return geocode.Result{}, err
	}

	result, err := n.search(ctx, query)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}

	var coords geo.Coordinate
	coords.Lat, err = strconv.ParseFloat(result.APILat, 64)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("%w: failed to parse latitude from Nominatim API response: %w",
			geocode.ErrParse, err)
	}
	coords.Lon, err = strconv.ParseFloat(result.APILon, 64)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("%w: failed to parse longitude from Nominatim API response: %w",
			geocode.ErrParse, err)
	}
	if result.DisplayName == "" {
		return geocode.Result{}, fmt.Errorf("%w: Nominatim API response has no display name", geocode.ErrParse)
	}

	return geocode.Result{
		Coordinate:       coords,
		FormattedAddress: result.DisplayName,
		PostalCode:       result.Address.Postcode,
	}, nil
}

func (n *Nominatim) Postcode(ctx context.Context, address string) (string, error) {
	address, err := geocode.NormalizeQuery(address)
	if err != nil {
		return "", err
	}

	result, err := n.search(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to fetch postcode from Nominatim API: %w", err)
	}
	return result.Address.Postcode, nil
}

func (n *Nominatim) search(ctx context.Context, text string) (SearchResult, error) {
	var results []SearchResult

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", text)
	query.Set("addressdetails", "1")
	query.Set("limit", "1")
	query.Set("accept-language", n.lang.String())

	if _, err := n.http.GetWithTimeout(ctx, n.endpoint, &results, query, nil, n.timeout); err != nil {
		return SearchResult{}, err
	}
	if len(results) < 1 {
		return SearchResult{}, fmt.Errorf("%w for address %q", geocode.ErrNoResult, text)
	}
	return results[0], nil
}
