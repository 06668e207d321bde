// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package staticmap fetches rendered map images from the Yandex static map API.
package staticmap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/http"
	"github.com/wneessen/mapviewer/internal/vartype"
)

const (
	APIEndpoint = "https://static-maps.yandex.ru/1.x/"
	APITimeout  = time.Second * 10

	MinZoom = 0
	MaxZoom = 17

	// MarkerStyle is the marker icon placed at the search result: a dark-green pin
	// without content.
	MarkerStyle = "pm2dgl"
)

// ErrInvalidZoom is returned for requests with a zoom level outside of [MinZoom, MaxZoom].
var ErrInvalidZoom = errors.New("zoom level out of range")

// Layer is the map layer code understood by the static map API.
type Layer string

const (
	LayerMap      Layer = "map"
	LayerSkeleton Layer = "skl"
)

// Request describes a single map image.
type Request struct {
	Center geo.Coordinate
	Zoom   int
	Layer  Layer
	Marker vartype.Variable[geo.Coordinate]
}

// Validate checks that the request can be sent to the API.
func (r Request) Validate() error {
	if r.Zoom < MinZoom || r.Zoom > MaxZoom {
		return fmt.Errorf("%w: %d", ErrInvalidZoom, r.Zoom)
	}
	if r.Layer == "" {
		return errors.New("map layer must not be empty")
	}
	return nil
}

// Query returns the API query parameters for the request.
func (r Request) Query() url.Values {
	query := url.Values{}
	query.Set("ll", r.Center.String())
	query.Set("l", string(r.Layer))
	query.Set("z", strconv.Itoa(r.Zoom))
	if marker, ok := r.Marker.Get(); ok {
		query.Set("pt", marker.String()+","+MarkerStyle)
	}
	return query
}

// Client fetches map images. Failing requests are repeated according to the retry policy.
type Client struct {
	endpoint string
	http     *http.Client
	policy   http.RetryPolicy
	timeout  time.Duration
}

// New returns a static map client. An empty endpoint or a non-positive timeout selects
// the default.
func New(client *http.Client, endpoint string, timeout time.Duration, policy http.RetryPolicy) *Client {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     client,
		policy:   policy,
		timeout:  timeout,
	}
}

// Fetch retrieves the map image for the request and returns the raw image data as sent
// by the API (usually PNG).
func (c *Client) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	data, err := c.http.GetBytesWithRetry(ctx, c.endpoint, req.Query(), nil, c.timeout, c.policy)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch static map image: %w", err)
	}
	return data, nil
}
