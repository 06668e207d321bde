// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode defines the forward geocoding abstraction used by the map viewer. The
// actual API clients live in the provider sub-packages.
package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/wneessen/mapviewer/internal/geo"
)

var (
	// ErrEmptyQuery is returned if a lookup is requested for an empty or whitespace-only query.
	// No request is sent to the API in this case.
	ErrEmptyQuery = errors.New("empty geocode query")
	// ErrNoResult is returned if the API response did not contain any matching object.
	ErrNoResult = errors.New("no geocode result found")
	// ErrParse is returned if the API response did not have the expected structure.
	ErrParse = errors.New("failed to parse geocode response")
)

// Result is the outcome of a successful forward geocode lookup.
type Result struct {
	Coordinate       geo.Coordinate
	FormattedAddress string
	// PostalCode is empty if the provider did not return one
	PostalCode string
}

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Name() string
	// Geocode resolves the query into a coordinate and a formatted address.
	Geocode(ctx context.Context, query string) (Result, error)
	// Postcode looks up the postal code of a house-level address. An empty string and a nil
	// error are returned if the provider knows the address but not its postal code.
	Postcode(ctx context.Context, address string) (string, error)
}

// NormalizeQuery trims the query and returns ErrEmptyQuery if nothing is left.
func NormalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}
